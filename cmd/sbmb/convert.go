package main

import (
	"fmt"

	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/export"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	from, to, err := c.Range()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sbmb.ErrorMessage(err))
		return err
	}

	result, err := deps.Exporter.Export(deps.Ctx, export.Request{
		Base:    deps.Config.BaseURL(),
		DocType: deps.Config.DocType,
		Labels:  deps.Config.Labels(),
		From:    from,
		To:      to,
	})
	if err != nil {
		if sbmb.ErrorCode(err) == sbmb.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Run 'sbmb fetch -s %d -e %d' first.\n", sbmb.ErrorMessage(err), from, to)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error converting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Converted %d pages: %d documents in %d files under %s\n",
		result.Pages, result.Documents, result.Files, deps.Exporter.Dir.Path())
	return nil
}
