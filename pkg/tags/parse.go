package tags

import (
	"github.com/flosch/pongo2/v6"
)

type attr struct {
	key  string
	expr pongo2.IEvaluator // nil for bare keys
}

type tagNode struct {
	kind  Kind
	token *pongo2.Token
	name  pongo2.IEvaluator
	attrs []attr
	body  *pongo2.NodeWrapper
}

func parserFor(kind Kind) pongo2.TagParser {
	return func(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
		node := &tagNode{kind: kind, token: start}

		if kind == KindFormCtx {
			if err := node.parseFormCtx(arguments); err != nil {
				return nil, err
			}
			return node, nil
		}

		if err := node.parseArguments(arguments); err != nil {
			return nil, err
		}

		// the positional argument of form and submit is not a field name
		if kind != KindForm && kind != KindSubmit && node.name != nil && node.hasAttr("name") {
			perr := arguments.Error(ErrConflictingName.Error(), start)
			perr.OrigError = ErrConflictingName
			return nil, perr
		}

		if kind == KindError && node.name == nil && !node.hasAttr("name") {
			perr := arguments.Error(ErrMissingErrorField.Error(), start)
			perr.OrigError = ErrMissingErrorField
			return nil, perr
		}

		if end := kind.endTag(); end != "" {
			wrapper, endArgs, err := doc.WrapUntilTag(end)
			if err != nil {
				return nil, err
			}
			if endArgs.Count() > 0 {
				return nil, endArgs.Error("Arguments not allowed here.", nil)
			}
			node.body = wrapper
		}

		return node, nil
	}
}

// parseArguments reads an optional leading string expression followed by
// key=value or bare key attributes.
func (n *tagNode) parseArguments(arguments *pongo2.Parser) *pongo2.Error {
	if arguments.PeekType(pongo2.TokenString) != nil {
		expr, err := arguments.ParseExpression()
		if err != nil {
			return err
		}
		n.name = expr
	}

	for arguments.Remaining() > 0 {
		key, err := parseAttrName(arguments)
		if err != nil {
			return err
		}
		if arguments.Match(pongo2.TokenSymbol, "=") == nil {
			n.attrs = append(n.attrs, attr{key: key})
			continue
		}
		expr, err := arguments.ParseExpression()
		if err != nil {
			return err
		}
		n.attrs = append(n.attrs, attr{key: key, expr: expr})
	}
	return nil
}

func (n *tagNode) parseFormCtx(arguments *pongo2.Parser) *pongo2.Error {
	if arguments.Remaining() == 0 {
		return arguments.Error("form_ctx requires a form name.", nil)
	}
	expr, err := arguments.ParseExpression()
	if err != nil {
		return err
	}
	if arguments.Remaining() > 0 {
		return arguments.Error("form_ctx takes exactly one argument.", nil)
	}
	n.name = expr
	return nil
}

// parseAttrName accepts identifiers joined by dashes, e.g. data-role.
func parseAttrName(arguments *pongo2.Parser) (string, *pongo2.Error) {
	tok := arguments.MatchType(pongo2.TokenIdentifier)
	if tok == nil {
		tok = arguments.MatchType(pongo2.TokenKeyword)
	}
	if tok == nil {
		return "", arguments.Error("Expected an attribute name.", nil)
	}
	name := tok.Val
	for arguments.Match(pongo2.TokenSymbol, "-") != nil {
		next := arguments.MatchType(pongo2.TokenIdentifier)
		if next == nil {
			return "", arguments.Error("Expected an attribute name after '-'.", nil)
		}
		name += "-" + next.Val
	}
	return name, nil
}

func (n *tagNode) hasAttr(key string) bool {
	for _, a := range n.attrs {
		if a.key == key {
			return true
		}
	}
	return false
}
