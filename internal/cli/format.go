package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/homebase/internal/listing"
	"github.com/evcraddock/homebase/internal/message"
	"github.com/evcraddock/homebase/internal/user"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingDetail prints a listing with its images and realtor.
func printListingDetail(w io.Writer, d *listing.Detail) {
	fmt.Fprintf(w, "Listing #%d\n", d.ID)
	fmt.Fprintf(w, "  Address:  %s\n", d.Address)
	fmt.Fprintf(w, "  City:     %s\n", d.City)
	fmt.Fprintf(w, "  Price:    $%s\n", formatPrice(d.Price))
	fmt.Fprintf(w, "  Land:     %g\n", d.LandSize)
	fmt.Fprintf(w, "  Beds:     %d\n", d.Bedrooms)
	fmt.Fprintf(w, "  Baths:    %g\n", d.Bathrooms)
	fmt.Fprintf(w, "  Type:     %s\n", d.PropertyType)
	fmt.Fprintf(w, "  Realtor:  %s <%s> %s\n", d.Realtor.Name, d.Realtor.Email, d.Realtor.Phone)

	if len(d.Images) == 0 {
		fmt.Fprintln(w, "  Images:   none")
		return
	}
	fmt.Fprintf(w, "  Images (%d):\n", len(d.Images))
	for _, img := range d.Images {
		fmt.Fprintf(w, "    %s\n", img.URL)
	}
}

// printListingTable prints search results as a formatted table.
func printListingTable(out io.Writer, summaries []*listing.Summary) error {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tADDRESS\tCITY\tPRICE\tBED\tBATH\tTYPE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-------\t----\t-----\t---\t----\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t$%s\t%d\t%g\t%s\n",
			s.ID, truncate(s.Address, 40), truncate(s.City, 20), formatPrice(s.Price),
			s.Bedrooms, s.Bathrooms, s.PropertyType); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d listings\n", len(summaries))
	return nil
}

// printMessages prints inquiries oldest first.
func printMessages(w io.Writer, msgs []*message.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages.")
		return
	}

	for _, m := range msgs {
		from := "unknown buyer"
		if m.Buyer != nil {
			from = fmt.Sprintf("%s <%s> %s", m.Buyer.Name, m.Buyer.Email, m.Buyer.Phone)
		}
		fmt.Fprintf(w, "[%s] #%d from %s\n  %s\n\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.ID, from, m.Text)
	}
}

// printUser prints an account profile.
func printUser(w io.Writer, u *user.User) {
	fmt.Fprintf(w, "User #%d\n", u.ID)
	fmt.Fprintf(w, "  Name:   %s\n", u.Name)
	fmt.Fprintf(w, "  Email:  %s\n", u.Email)
	fmt.Fprintf(w, "  Phone:  %s\n", u.Phone)
	fmt.Fprintf(w, "  Role:   %s\n", u.Role)
}

// formatPrice formats a dollar amount with thousands separators. Cents are
// kept only when present.
func formatPrice(dollars float64) string {
	s := strconv.FormatFloat(dollars, 'f', 2, 64)
	whole, cents, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	out := strings.Join(parts, ",")
	if cents != "00" {
		out += "." + cents
	}
	if neg {
		out = "-" + out
	}
	return out
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
