package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
)

func customerText(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.Customer.Name)
	fmt.Fprintf(&b, "Thanks for your order! Your payment was received and your listing video is now in production.\n\n")
	fmt.Fprintf(&b, "Order:    %s\n", order.OrderID)
	fmt.Fprintf(&b, "Package:  %s (%d photos)\n", order.Pricing.Package, order.PhotoCount)
	writePricingLines(&b, order.Pricing)
	fmt.Fprintf(&b, "\nWe'll email you a download link as soon as your video is ready.\n")
	return b.String()
}

func customerHTML(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(order.Customer.Name))
	b.WriteString("<p>Thanks for your order! Your payment was received and your listing video is now in production.</p>")
	fmt.Fprintf(&b, "<p><strong>Order %s</strong><br>%s (%d photos)</p>",
		html.EscapeString(order.OrderID), html.EscapeString(order.Pricing.Package), order.PhotoCount)
	b.WriteString("<table>")
	for _, line := range pricingRows(order.Pricing) {
		fmt.Fprintf(&b, "<tr><td>%s</td><td align=\"right\">%s</td></tr>",
			html.EscapeString(line[0]), line[1])
	}
	b.WriteString("</table>")
	b.WriteString("<p>We'll email you a download link as soon as your video is ready.</p>")
	return b.String()
}

// operatorText carries everything production needs to cut the video
// without opening the dashboard.
func operatorText(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Paid order %s\n\n", order.OrderID)
	fmt.Fprintf(&b, "Customer: %s <%s>", order.Customer.Name, order.Customer.Email)
	if order.Customer.Phone != "" {
		fmt.Fprintf(&b, " / %s", order.Customer.Phone)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Package:  %s (%d photos)\n", order.Pricing.Package, order.PhotoCount)
	writePricingLines(&b, order.Pricing)

	b.WriteString("\nPhotos (in video order):\n")
	for _, p := range sortedPhotos(order.Photos) {
		fmt.Fprintf(&b, "  %2d. %s\n", p.Position+1, p.URL)
	}

	sel := order.Selections
	b.WriteString("\nSelections:\n")
	if sel.CustomAudioURL != "" {
		fmt.Fprintf(&b, "  Music: custom audio %s\n", sel.CustomAudioURL)
	} else if sel.Music != "" {
		fmt.Fprintf(&b, "  Music: %s\n", sel.Music)
	}
	fmt.Fprintf(&b, "  Branding: %s\n", sel.Branding.Type)
	if sel.Branding.Type == models.BrandingCustom {
		if sel.Branding.LogoURL != "" {
			fmt.Fprintf(&b, "    Logo: %s\n", sel.Branding.LogoURL)
		}
		for _, kv := range [][2]string{
			{"Agent", sel.Branding.AgentName},
			{"Company", sel.Branding.CompanyName},
			{"Phone", sel.Branding.Phone},
			{"Email", sel.Branding.Email},
			{"Website", sel.Branding.Website},
		} {
			if kv[1] != "" {
				fmt.Fprintf(&b, "    %s: %s\n", kv[0], kv[1])
			}
		}
	}
	if sel.Voiceover.Enabled {
		fmt.Fprintf(&b, "  Voiceover: yes (voice: %s)\n", orDefault(sel.Voiceover.Voice, "operator's choice"))
		if sel.Voiceover.Script != "" {
			fmt.Fprintf(&b, "  Script:\n%s\n", indent(sel.Voiceover.Script, "    "))
		}
	}
	if sel.IncludeEditedPhotos {
		b.WriteString("  Deliver edited photos: yes\n")
	}
	if sel.SpecialInstructions != "" {
		fmt.Fprintf(&b, "\nSpecial instructions:\n%s\n", indent(sel.SpecialInstructions, "  "))
	}
	return b.String()
}

func operatorHTML(order *models.Order) string {
	// The operator alert is read by humans in a plain inbox; the text
	// body wrapped in <pre> keeps alignment without a template.
	return "<pre>" + html.EscapeString(operatorText(order)) + "</pre>"
}

func writePricingLines(b *strings.Builder, p models.Pricing) {
	for _, line := range pricingRows(p) {
		fmt.Fprintf(b, "%-22s%s\n", line[0]+":", line[1])
	}
}

func pricingRows(p models.Pricing) [][2]string {
	rows := [][2]string{{"Base price", formatAmount(p.Base)}}
	if p.BrandingFee > 0 {
		rows = append(rows, [2]string{"Custom branding", formatAmount(p.BrandingFee)})
	}
	if p.VoiceoverFee > 0 {
		rows = append(rows, [2]string{"Voiceover", formatAmount(p.VoiceoverFee)})
	}
	if p.EditedPhotosFee > 0 {
		rows = append(rows, [2]string{"Edited photos", formatAmount(p.EditedPhotosFee)})
	}
	return append(rows, [2]string{"Total", formatAmount(p.Total)})
}

func sortedPhotos(photos []models.Photo) []models.Photo {
	out := make([]models.Photo, len(photos))
	for _, p := range photos {
		if p.Position >= 0 && p.Position < len(out) {
			out[p.Position] = p
		}
	}
	return out
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
