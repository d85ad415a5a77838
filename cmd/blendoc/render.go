package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

// renderJSON marshals v as indented JSON to stdout.
func renderJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render dispatches to JSON or text rendering depending on the --json
// flag, so each sub-command's Action only supplies its text renderer.
func render(c *cli.Context, v any, textFn func()) error {
	if c.Bool("json") {
		return renderJSON(v)
	}
	textFn()
	return nil
}

// printValue renders a decoded Value as indented text.
func printValue(v blend.Value, indent string) {
	switch v.Kind {
	case blend.ValStruct:
		fmt.Printf("%s%s {\n", indent, v.Struct.TypeName)
		for _, f := range v.Struct.Fields {
			fmt.Printf("%s  %s:\n", indent, f.Name)
			printValue(f.Value, indent+"    ")
		}
		fmt.Printf("%s}\n", indent)
	case blend.ValArray:
		fmt.Printf("%s[%d]\n", indent, len(v.Array))
		for i, e := range v.Array {
			if i >= 8 {
				fmt.Printf("%s  ... %d more\n", indent, len(v.Array)-i)
				break
			}
			printValue(e, indent+"  ")
		}
	case blend.ValPtr:
		fmt.Printf("%s-> 0x%x\n", indent, v.PtrVal)
	case blend.ValString:
		fmt.Printf("%s%q\n", indent, v.Str)
	case blend.ValBytes:
		fmt.Printf("%s<%d bytes>\n", indent, len(v.Bytes))
	case blend.ValBool:
		fmt.Printf("%s%v\n", indent, v.Bool)
	case blend.ValI64:
		fmt.Printf("%s%d\n", indent, v.I64)
	case blend.ValU64:
		fmt.Printf("%s%d\n", indent, v.U64)
	case blend.ValF32:
		fmt.Printf("%s%g\n", indent, v.F32)
	case blend.ValF64:
		fmt.Printf("%s%g\n", indent, v.F64)
	default:
		fmt.Printf("%snull\n", indent)
	}
}

func printStructValue(sv blend.StructValue, indent string) {
	printValue(blend.Value{Kind: blend.ValStruct, Struct: sv}, indent)
}

func hr(title string) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", len(title)))
}
