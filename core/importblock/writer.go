package importblock

import (
	"strings"

	"okta-import/core/reconcile"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Format renders one directive as an import block terminated by a newline.
func Format(d reconcile.Directive) string {
	f := hclwrite.NewEmptyFile()
	appendBlock(f.Body(), d)
	return string(hclwrite.Format(f.Bytes()))
}

// Render renders directives in order, separated by a blank line.
// An empty input renders as an empty string.
func Render(directives []reconcile.Directive) string {
	blocks := make([]string, 0, len(directives))
	for _, d := range directives {
		blocks = append(blocks, Format(d))
	}
	return strings.Join(blocks, "\n")
}

func appendBlock(body *hclwrite.Body, d reconcile.Directive) {
	block := body.AppendNewBlock("import", nil).Body()
	block.SetAttributeTraversal("to", hcl.Traversal{
		hcl.TraverseRoot{Name: d.Type},
		hcl.TraverseAttr{Name: d.Name},
	})
	block.SetAttributeValue("id", cty.StringVal(d.ID))
}
