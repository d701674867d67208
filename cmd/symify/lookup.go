// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	flags := &commonFlags{}
	var rvas []string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve one or more RVAs to their containing function",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := flags.newContext()
			if err != nil {
				return err
			}

			type result struct {
				RVA      string  `json:"rva"`
				Function *string `json:"function"`
			}
			var results []result

			for _, raw := range rvas {
				probe, err := parseRVA(raw)
				if err != nil {
					return err
				}
				proc, err := ctx.FindFunction(probe)
				if err != nil {
					return fmt.Errorf("lookup of 0x%x failed: %w", probe, err)
				}
				r := result{RVA: raw}
				if proc != nil {
					r.Function = proc.Function
				}
				results = append(results, r)
			}

			if flags.format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				if r.Function == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: <no function>\n", r.RVA)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.RVA, *r.Function)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&rvas, "rva", nil, "RVA to resolve, in hex (0x1000) or decimal; repeatable")
	return cmd
}

func parseRVA(raw string) (uint32, error) {
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid --rva value %q: %w", raw, err)
	}
	return uint32(v), nil
}
