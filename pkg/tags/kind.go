package tags

// Kind enumerates the supported tags.
type Kind int

const (
	KindForm Kind = iota
	KindFormCtx
	KindText
	KindEmail
	KindPassword
	KindHidden
	KindCheckbox
	KindRadio
	KindSubmit
	KindLabel
	KindQuickSelect
	KindTextArea
	KindError
)

var kindNames = map[Kind]string{
	KindForm:        "form",
	KindFormCtx:     "form_ctx",
	KindText:        "text",
	KindEmail:       "email",
	KindPassword:    "password",
	KindHidden:      "hidden",
	KindCheckbox:    "checkbox",
	KindRadio:       "radio",
	KindSubmit:      "submit",
	KindLabel:       "label",
	KindQuickSelect: "quickselect",
	KindTextArea:    "textarea",
	KindError:       "error",
}

// Kinds lists every tag kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindForm; k <= KindError; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the template tag name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// InputType returns the type attribute for kinds rendered as <input>.
func (k Kind) InputType() (string, bool) {
	switch k {
	case KindText, KindEmail, KindPassword, KindHidden, KindCheckbox, KindRadio, KindSubmit:
		return k.String(), true
	default:
		return "", false
	}
}

// IsField reports whether the kind renders a labelable form control.
func (k Kind) IsField() bool {
	switch k {
	case KindText, KindEmail, KindPassword, KindHidden, KindCheckbox, KindRadio, KindSubmit,
		KindQuickSelect, KindTextArea:
		return true
	default:
		return false
	}
}

func (k Kind) endTag() string {
	switch k {
	case KindForm:
		return "endform"
	case KindLabel:
		return "endlabel"
	default:
		return ""
	}
}
