package template_test

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpump/pkg/formdata"
	"github.com/goliatone/go-formpump/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formpump/pkg/tags"
	"github.com/goliatone/go-formpump/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func signupData() map[string]any {
	return map[string]any{
		"plans": [][]string{{"free", "Free"}, {"pro", "Pro"}},
		"form_vars": map[string]any{
			"signup": map[string]any{
				"email": "ada@example.com",
				"plan":  "pro",
				"terms": "on",
			},
		},
		"form_errors": map[string]any{
			"signup": map[string]any{
				"email": "already registered",
			},
		},
	}
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("signup", signupData(), w)
	})

	goldenPath := filepath.Join("testdata", "signup.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, result); diff != "" {
		t.Fatalf("render template mismatch (-want +got):\n%s", diff)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RenderDispatchesInlineContent(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render(`{% form_ctx "login" %}{% text "user" %}`, map[string]any{
		"form_vars": map[string]any{"login": map[string]any{"user": "ada"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<input type="text" name="user" id="id1" value="ada" />`
	if got != want {
		t.Fatalf("inline render mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestGoTemplateEngine_StateIsPerRender(t *testing.T) {
	engine := newEngine(t)

	first, err := engine.RenderString(`{% label "q" %}Q{% endlabel %}`, nil)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if first != `<label for="id1">Q</label>` {
		t.Fatalf("unexpected first render %q", first)
	}

	// the label above is never consumed; a new render must not pair with it
	second, err := engine.RenderString(`{% text "q" %}`, nil)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if second != `<input type="text" name="q" id="id2" value="" />` {
		t.Fatalf("unexpected second render %q", second)
	}
}

func TestGoTemplateEngine_ConcurrentRenders(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS(t)),
		gotemplate.WithTagOptions(tags.WithIDFunc(func() string { return "x" })),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	want, err := engine.RenderTemplate("signup", signupData())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.RenderTemplate("signup", signupData())
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- fmt.Errorf("concurrent render mismatch: %q", got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestGoTemplateEngine_Inspect(t *testing.T) {
	engine := newEngine(t)

	fields, err := engine.Inspect("signup", signupData())
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	want := []tags.Field{
		{Form: "signup", Name: "email", Kind: tags.KindEmail, ID: "id1", Value: "ada@example.com", Label: "Email"},
		{
			Form: "signup", Name: "plan", Kind: tags.KindQuickSelect, ID: "id2", Label: "Plan",
			Options: []formdata.Option{
				{Label: "Choose a plan", Placeholder: true},
				{Value: "free", Label: "Free"},
				{Value: "pro", Label: "Pro"},
			},
		},
		{Form: "signup", Name: "terms", Kind: tags.KindCheckbox, ID: "id3", Value: "yes", Label: "I agree"},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("inspect mismatch (-want +got):\n%s", diff)
	}
}

type amountForm struct {
	Amount int    `json:"amount"`
	Note   string `json:"note"`
}

type choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func TestGoTemplateEngine_TypedValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		data any
		want string
	}{
		{
			name: "error value",
			src:  `{% text "email" %}{% error "email" %}`,
			data: map[string]any{"form_errors": map[string]any{"": map[string]any{"email": errors.New("is invalid")}}},
			want: `<input type="text" name="email" id="id1" value="" class="error" />` +
				`<div class="error-message">is invalid</div>`,
		},
		{
			name: "error list",
			src:  `{% error "email" render="list" %}`,
			data: map[string]any{"form_errors": map[string]any{"": map[string]any{"email": []error{errors.New("too short"), errors.New("taken")}}}},
			want: `<ul class="error-message"><li>too short</li><li>taken</li></ul>`,
		},
		{
			name: "integer value",
			src:  `{% text "amount" %}`,
			data: map[string]any{"form_vars": map[string]any{"": map[string]any{"amount": 1500000}}},
			want: `<input type="text" name="amount" id="id1" value="1500000" />`,
		},
		{
			name: "integer matches declared radio value",
			src:  `{% radio "n" value="3" %}{% radio "n" value="4" %}`,
			data: map[string]any{"form_vars": map[string]any{"": map[string]any{"n": 3}}},
			want: `<input type="radio" name="n" id="id1" value="3" checked="checked" />` +
				`<input type="radio" name="n" id="id2" value="4" />`,
		},
		{
			name: "struct field values",
			src:  `{% text "amount" %}{% text "note" %}`,
			data: map[string]any{"form_vars": map[string]any{"": amountForm{Amount: 1500000, Note: "rent"}}},
			want: `<input type="text" name="amount" id="id1" value="1500000" />` +
				`<input type="text" name="note" id="id2" value="rent" />`,
		},
		{
			name: "url values",
			src:  `{% form "search" %}{% text "q" %}{% checkbox "lang" value="go" %}{% checkbox "lang" value="zig" %}{% endform %}`,
			data: map[string]any{"form_vars": map[string]url.Values{"search": {"q": {"forms"}, "lang": {"go", "rust"}}}},
			want: `<form method="post" action="">` +
				`<input type="text" name="q" id="id1" value="forms" />` +
				`<input type="checkbox" name="lang" id="id2" value="go" checked="checked" />` +
				`<input type="checkbox" name="lang" id="id3" value="zig" />` +
				`</form>`,
		},
		{
			name: "bool checkbox",
			src:  `{% checkbox "terms" %}`,
			data: map[string]any{"form_vars": map[string]any{"": map[string]any{"terms": true}}},
			want: `<input type="checkbox" name="terms" id="id1" value="t" checked="checked" />`,
		},
		{
			name: "typed options",
			src:  `{% quickselect "c" options=fruit %}`,
			data: map[string]any{
				"fruit":     []formdata.Option{{Value: "a", Label: "Apple"}, {Value: "b", Label: "Banana"}},
				"form_vars": map[string]any{"": map[string]any{"c": "b"}},
			},
			want: `<select name="c" id="id1"><option value="a">Apple</option><option value="b" selected="selected">Banana</option></select>`,
		},
		{
			name: "struct options",
			src:  `{% quickselect "c" options=fruit %}`,
			data: map[string]any{"fruit": []choice{{Value: "a", Label: "Apple"}, {Value: "b", Label: "Banana"}}},
			want: `<select name="c" id="id1"><option value="a">Apple</option><option value="b">Banana</option></select>`,
		},
		{
			name: "struct data",
			src:  `{% text "note" %}`,
			data: struct {
				FormVars map[string]amountForm `json:"form_vars"`
			}{FormVars: map[string]amountForm{"": {Note: "hi"}}},
			want: `<input type="text" name="note" id="id1" value="hi" />`,
		},
		{
			name: "string map data",
			src:  `{% text "q" value=greeting %}`,
			data: map[string]string{"greeting": "hello"},
			want: `<input type="text" name="q" id="id1" value="hello" />`,
		},
		{
			name: "messages filter",
			src:  `{{ form_errors.signup.email|messages|join:", " }}`,
			data: map[string]any{"form_errors": map[string]any{"signup": map[string]any{"email": errors.New("is invalid")}}},
			want: `is invalid`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(t)
			got, err := engine.RenderString(tc.src, tc.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoTemplateEngine_IncludeSharesPairing(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("included", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<label for="id1">Email</label><input type="email" name="email" id="id1" value="" />` + "\n"
	if got != want {
		t.Fatalf("include render mismatch\nwant: %q\n got: %q", want, got)
	}

	fields, err := engine.Inspect("included", nil)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(fields) != 1 || fields[0].Label != "Email" {
		t.Fatalf("expected included label to resolve, got %+v", fields)
	}
}

func TestGoTemplateEngine_TagOptions(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS(t)),
		gotemplate.WithTagOptions(
			tags.WithIDFunc(testsupport.SequentialIDs()),
			tags.WithDefaultFormAction("/fallback"),
			tags.WithFormNameKey("_form"),
		),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString(`{% form "contact" %}{% endform %}`, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<form method="post" action="/fallback"><input type="hidden" name="_form" value="contact" /></form>`
	if got != want {
		t.Fatalf("form render mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestGoTemplateEngine_RenderErrors(t *testing.T) {
	engine := newEngine(t)

	_, err := engine.RenderString(`{% error %}`, nil)
	if err == nil || !strings.Contains(err.Error(), tags.ErrMissingErrorField.Error()) {
		t.Fatalf("expected missing field parse error, got %v", err)
	}

	_, err = engine.RenderString(`{% error "email" render="fancy" %}`, nil)
	var perr *pongo2.Error
	if !errors.As(err, &perr) || !errors.Is(perr.OrigError, tags.ErrUnknownErrorRenderer) {
		t.Fatalf("expected ErrUnknownErrorRenderer, got %v", err)
	}

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func templatesFS(t *testing.T) fs.FS {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return templatesFS
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS(t)),
		gotemplate.WithTagOptions(tags.WithIDFunc(testsupport.SequentialIDs())),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
