// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newFramesCmd() *cobra.Command {
	flags := &commonFlags{}
	var rvas []string

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Reconstruct the inlined call stack at one or more RVAs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := flags.newContext()
			if err != nil {
				return err
			}

			type frameOut struct {
				Function *string `json:"function"`
				File     *string `json:"file"`
				Line     *uint32 `json:"line"`
			}
			type result struct {
				RVA    string     `json:"rva"`
				Frames []frameOut `json:"frames"`
			}
			var results []result

			for _, raw := range rvas {
				probe, err := parseRVA(raw)
				if err != nil {
					return err
				}
				pf, err := ctx.FindFrames(probe)
				if err != nil {
					return fmt.Errorf("frame reconstruction at 0x%x failed: %w", probe, err)
				}
				r := result{RVA: raw}
				if pf != nil {
					for _, f := range pf.Frames {
						r.Frames = append(r.Frames, frameOut{Function: f.Function, File: f.File, Line: f.Line})
					}
				}
				results = append(results, r)
			}

			if flags.format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				if len(r.Frames) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: <no function>\n", r.RVA)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", r.RVA)
				for i, f := range r.Frames {
					fmt.Fprintf(cmd.OutOrStdout(), "  #%d %s (%s:%s)\n", i, deref(f.Function), deref(f.File), derefLine(f.Line))
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&rvas, "rva", nil, "RVA to resolve, in hex (0x1000) or decimal; repeatable")
	return cmd
}

func deref(s *string) string {
	if s == nil {
		return "??"
	}
	return *s
}

func derefLine(l *uint32) string {
	if l == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *l)
}
