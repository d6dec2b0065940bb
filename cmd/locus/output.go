// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/locus/internal/models"
)

// printer writes text output. Write errors are kept and reported once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) business(prefix string, b *models.BusinessSummary) {
	where := strings.Trim(b.City+", "+b.State, ", ")
	if where == "" {
		where = fmt.Sprintf("%.5f, %.5f", b.Latitude, b.Longitude)
	}
	p.line("%s%s (%s) %s [%s]", prefix, b.Name, b.ID, where, strings.Join(b.Categories, ", "))
}

// render prints v as indented JSON when --json is set, otherwise calls text.
func render(cmd *cobra.Command, opts *options, v interface{}, text func(p *printer)) error {
	if opts.jsonOutput {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	p := &printer{w: cmd.OutOrStdout()}
	text(p)
	return p.err
}
