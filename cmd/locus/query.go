// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/locus/internal/models"
	"github.com/tomtom215/locus/internal/search"
)

func newSimilarCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "similar <name>",
		Short: "List the businesses most similar to the named one",
		Long: `Similar resolves the name (case-insensitive) and ranks every other
business by a blend of review text similarity and category overlap.
Businesses sharing the searched name are left out. An unknown name prints
no results and is not an error.

Example:
  locus similar "Joe's Diner" --store data/locus.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			res, err := c.SimilarByName(cmd.Context(), name)
			if err != nil {
				return err
			}

			resp := res.Response()
			return render(cmd, opts, resp, func(p *printer) {
				if !resp.Found {
					p.line("No business named %q", name)
					return
				}
				p.business("Similar to ", resp.Target)
				for i := range resp.Results {
					r := &resp.Results[i]
					p.business(fmt.Sprintf("%3d. ", i+1), &r.BusinessSummary)
					p.line("     score %.3f (text %.3f, category %.3f)", r.Score, r.TextScore, r.CategoryScore)
				}
			})
		},
	}
}

func newPathCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path <from-id> <to-id>",
		Short: "Find the shortest geographic path between two businesses",
		Long: `Path walks the proximity graph from one business id to another and
prints every hop. Businesses in different components are reported as
unreachable.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}
			res, err := c.Path(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			resp := res.Response()
			return render(cmd, opts, resp, func(p *printer) {
				if !resp.Reachable {
					p.line("No path from %s to %s", resp.From, resp.To)
					return
				}
				for i := range resp.Path {
					p.business(fmt.Sprintf("%3d. ", i), &resp.Path[i])
				}
				p.line("%d hops, %.3f km", resp.Hops, resp.DistanceKm)
			})
		},
	}
}

func newConnectivityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "connectivity",
		Short: "Report the size and connectivity of the proximity graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}

			resp := c.Connectivity().Response()
			return render(cmd, opts, resp, func(p *printer) {
				p.line("Businesses:  %d", resp.Businesses)
				p.line("Edges:       %d", resp.Edges)
				p.line("Components:  %d", resp.Components)
				p.line("Neighbors:   %d per business", resp.Neighbors)
			})
		},
	}
}

func newClustersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters [category]",
		Short: "List primary-category clusters, or the members of one",
		Long: `Without an argument, clusters lists every primary category with its
size. With a category it lists the businesses in that cluster.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				resp := c.ClusterList()
				return render(cmd, opts, resp, func(p *printer) {
					for _, info := range resp.Clusters {
						p.line("%6d  %s", info.Size, info.Category)
					}
				})
			}

			members := c.BusinessesInCluster(args[0])
			if len(members) == 0 {
				return fmt.Errorf("no cluster named %q", args[0])
			}
			resp := models.ClusterResponse{Category: args[0], Businesses: search.Summaries(members)}
			return render(cmd, opts, resp, func(p *printer) {
				for i := range resp.Businesses {
					p.business("", &resp.Businesses[i])
				}
			})
		},
	}
}

func newNearbyCmd(opts *options) *cobra.Command {
	var (
		lat, lon float64
		radiusKm float64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "nearby --lat <latitude> --lon <longitude>",
		Short: "List businesses within a radius of a point, closest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lat < -90 || lat > 90 {
				return fmt.Errorf("invalid latitude %v", lat)
			}
			if lon < -180 || lon > 180 {
				return fmt.Errorf("invalid longitude %v", lon)
			}
			if radiusKm <= 0 || radiusKm > search.MaxNearbyRadiusKm {
				return fmt.Errorf("--radius must be in (0, %g] km", search.MaxNearbyRadiusKm)
			}

			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}

			resp := search.NearbyResults(c.Nearby(lat, lon, radiusKm, limit))
			return render(cmd, opts, resp, func(p *printer) {
				for i := range resp {
					p.business(fmt.Sprintf("%8.3f km  ", resp[i].DistanceKm), &resp[i].Business)
				}
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the center")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of the center")
	cmd.Flags().Float64Var(&radiusKm, "radius", 1.0, "search radius in kilometres, at most 100")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum results, 0 for all")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}
