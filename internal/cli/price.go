package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ui/tui"
	"github.com/evanraalte/nstimes/internal/usecase"
)

func priceCmd(g *globalFlags) *cobra.Command {
	var class int
	var isReturn bool
	var format string
	var interactive bool

	c := &cobra.Command{
		Use:   "price FROM TO",
		Short: "Show the fare between two stations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := domain.ParseTravelClass(class)
			if err != nil {
				return &domain.OpError{Op: "cli.price", Kind: domain.KindInvalidInput, Err: err}
			}
			if format != "pretty" && format != "json" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}

			a, err := newApp(g, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			cache, err := a.openCache()
			if err != nil {
				return err
			}

			opts := []usecase.GetPriceOption{
				usecase.WithLogger(a.log),
				usecase.WithPriceChooser(a.chooser(interactive)),
			}
			if cache != nil {
				opts = append(opts, usecase.WithCache(cache))
			}

			quote, err := usecase.NewGetPrice(a.resolver, a.client, opts...).Execute(cmd.Context(), usecase.PriceRequest{
				From:   args[0],
				To:     args[1],
				Class:  tc,
				Return: isReturn,
			})
			if err != nil {
				return err
			}
			return printQuote(cmd.OutOrStdout(), quote, format)
		},
	}

	c.Flags().IntVarP(&class, "class", "c", 2, "Travel class: 1 or 2")
	c.Flags().BoolVarP(&isReturn, "return", "r", false, "Price a return trip (never cached)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick a station when a name is ambiguous")
	return c
}

type quoteJSON struct {
	From        string       `json:"from"`
	FromID      int          `json:"from_id"`
	To          string       `json:"to"`
	ToID        int          `json:"to_id"`
	TravelClass int          `json:"travel_class"`
	TravelType  string       `json:"travel_type"`
	Cached      bool         `json:"cached"`
	Options     []optionJSON `json:"options"`
}

type optionJSON struct {
	Name          string `json:"name"`
	TotalCents    int    `json:"total_cents"`
	PerAdultCents int    `json:"per_adult_cents"`
	DiscountCents int    `json:"discount_cents"`
	DiscountType  string `json:"discount_type"`
	Operator      string `json:"operator,omitempty"`
	Best          bool   `json:"best"`
}

func printQuote(w io.Writer, q domain.PriceQuote, format string) error {
	if format == "json" {
		out := quoteJSON{
			From:        q.From.Name,
			FromID:      int(q.From.ID),
			To:          q.To.Name,
			ToID:        int(q.To.ID),
			TravelClass: int(q.Class),
			TravelType:  string(q.TravelType),
			Cached:      q.FromCache,
			Options:     make([]optionJSON, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			out.Options = append(out.Options, optionJSON{
				Name:          o.DisplayName,
				TotalCents:    o.TotalCents,
				PerAdultCents: o.PerAdultCents,
				DiscountCents: o.DiscountCents,
				DiscountType:  o.DiscountType,
				Operator:      o.OperatorName,
				Best:          o.BestOption,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printPrettyQuote(w, q)
	return nil
}

func printPrettyQuote(w io.Writer, q domain.PriceQuote) {
	t := tui.DefaultTheme()

	fmt.Fprintln(w, t.Title.Render(fmt.Sprintf("%s -> %s", q.From.Name, q.To.Name)))
	fmt.Fprintln(w, t.Subtitle.Render(fmt.Sprintf("%s, %s", q.Class, q.TravelType)))

	width := 0
	for _, o := range q.Options {
		if n := len([]rune(o.DisplayName)); n > width {
			width = n
		}
	}

	for _, o := range q.Options {
		var b strings.Builder
		b.WriteString("  ")
		b.WriteString(o.DisplayName)
		b.WriteString(strings.Repeat(" ", width-len([]rune(o.DisplayName))+2))
		b.WriteString(t.Price.Render(domain.FormatEuros(o.TotalCents)))
		if o.DiscountCents > 0 {
			b.WriteString(fmt.Sprintf(" (-%s %s)", domain.FormatEuros(o.DiscountCents), o.DiscountType))
		}
		if o.BestOption {
			b.WriteString(" *")
		}
		fmt.Fprintln(w, b.String())
	}

	if q.FromCache {
		fmt.Fprintln(w, t.Help.Render("(from cache)"))
	}
}
