package main

import (
	"fmt"
	"strconv"
	"strings"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

// selectorFlags are the shared lookup flags accepted by every
// sub-command that needs to name a block: exactly one of --code,
// --ptr, --id should be set.
var selectorFlags = []cli.Flag{
	&cli.StringFlag{Name: "code", Usage: "4-character block code, e.g. SC or OB"},
	&cli.StringFlag{Name: "ptr", Usage: "old pointer, 0xHEX or decimal"},
	&cli.StringFlag{Name: "id", Usage: "ID data-block name"},
}

// resolveSelector resolves one of --code/--ptr/--id against an opened
// file and returns the old pointer it names. --code resolves to the
// first matching block.
func resolveSelector(c *cli.Context, f *blend.BlendFile) (uint64, error) {
	if raw := c.String("ptr"); raw != "" {
		return parsePtrLiteral(raw)
	}
	if name := c.String("id"); name != "" {
		rec, ok := f.IDs.ByIDName[name]
		if !ok {
			return 0, cli.Exit(fmt.Sprintf("no ID data-block named %q", name), 1)
		}
		return rec.Canonical, nil
	}
	if code := c.String("code"); code != "" {
		blocks := f.BlockByCode(code)
		if len(blocks) == 0 {
			return 0, cli.Exit(fmt.Sprintf("no block with code %q", code), 1)
		}
		return blocks[0].Head.Old, nil
	}
	return 0, cli.Exit("one of --code, --ptr, --id is required", 1)
}

// pairedSelectorFlags builds two independent selector groups sharing
// the --code/--ptr/--id shape, prefixed (e.g. "from-code", "to-ptr")
// for sub-commands that need two endpoints.
func pairedSelectorFlags(prefixA, prefixB string) []cli.Flag {
	mk := func(prefix string) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: prefix + "-code", Usage: "4-character block code"},
			&cli.StringFlag{Name: prefix + "-ptr", Usage: "old pointer, 0xHEX or decimal"},
			&cli.StringFlag{Name: prefix + "-id", Usage: "ID data-block name"},
		}
	}
	return append(mk(prefixA), mk(prefixB)...)
}

// resolvePrefixed resolves a pairedSelectorFlags group by its prefix.
func resolvePrefixed(c *cli.Context, f *blend.BlendFile, prefix string) (uint64, error) {
	if raw := c.String(prefix + "-ptr"); raw != "" {
		return parsePtrLiteral(raw)
	}
	if name := c.String(prefix + "-id"); name != "" {
		rec, ok := f.IDs.ByIDName[name]
		if !ok {
			return 0, cli.Exit(fmt.Sprintf("no ID data-block named %q", name), 1)
		}
		return rec.Canonical, nil
	}
	if code := c.String(prefix + "-code"); code != "" {
		blocks := f.BlockByCode(code)
		if len(blocks) == 0 {
			return 0, cli.Exit(fmt.Sprintf("no block with code %q", code), 1)
		}
		return blocks[0].Head.Old, nil
	}
	return 0, cli.Exit(fmt.Sprintf("one of --%s-code, --%s-ptr, --%s-id is required", prefix, prefix, prefix), 1)
}

func parsePtrLiteral(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	base := 10
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		raw = raw[2:]
		base = 16
	}
	v, err := strconv.ParseUint(raw, base, 64)
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("invalid pointer literal %q: %v", raw, err), 1)
	}
	return v, nil
}
