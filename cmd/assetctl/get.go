package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartinsert/assetcache"
)

func newGetCmd() *cobra.Command {
	var (
		subBatchSize int
		showAssets   bool
	)
	cmd := &cobra.Command{
		Use:   "get ID...",
		Short: "Resolve assets and print every partial response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs, err := servers(cmd)
			if err != nil {
				return err
			}
			timeout, err := cmd.Flags().GetDuration(flagTimeout)
			if err != nil {
				return err
			}
			c, err := assetcache.Dial(addrs[0])
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			var found int
			err = c.GetAssets(ctx, args, subBatchSize, func(r assetcache.PartialResponse) error {
				found += r.Found
				fmt.Fprintf(out, "%s: %d/%d found in %s\n", r.Instance, r.Found, r.Requested, r.Elapsed)
				if !showAssets {
					return nil
				}
				for _, a := range r.Assets {
					if err := enc.Encode(a); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "total: %d/%d found\n", found, len(args))
			return nil
		},
	}
	cmd.Flags().IntVar(&subBatchSize, "sub-batch-size", 0, "server side sub-batch size, 0 for the server default")
	cmd.Flags().BoolVarP(&showAssets, "assets", "a", false, "print the resolved assets as JSON lines")
	return cmd
}
