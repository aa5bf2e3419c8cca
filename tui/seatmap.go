package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinema-booking-cli/model"
)

type seatCell struct {
	token  string
	status string
	cursor bool
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func (m appModel) renderSeatMap() string {
	if m.show == nil || m.show.Seats == nil {
		return "No seat map data."
	}
	seats := m.show.Seats
	rows := seats.Rows()
	cols := seats.Cols()

	cellWidth := 2
	if m.showSeatNumbers {
		cellWidth = max(cellWidth, len(fmt.Sprintf("%d", cols)))
	}
	rowWidth := len(fmt.Sprintf("R%d", rows))
	gridWidth := cols*(cellWidth+1) - 1

	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleBooked := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStylePending := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	var b strings.Builder
	screenBar := screenBarBlock(gridWidth, "SCREEN")
	indent := strings.Repeat(" ", rowWidth+1)
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n\n")

	if m.showSeatNumbers {
		b.WriteString(indent)
		for c := 1; c <= cols; c++ {
			b.WriteString(padCell(fmt.Sprintf("%d", c), cellWidth))
			if c < cols {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	available, booked := 0, 0
	for r := 1; r <= rows; r++ {
		label := fmt.Sprintf("R%d", r)
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, label))
		for c := 1; c <= cols; c++ {
			cell := m.seatCell(model.Seat{Row: r, Column: c})
			switch cell.status {
			case "available":
				available++
			case "booked":
				booked++
			}

			rendered := padCell(cell.token, cellWidth)
			switch cell.status {
			case "available":
				rendered = seatStyleAvailable.Render(rendered)
			case "booked":
				rendered = seatStyleBooked.Render(rendered)
			case "pending":
				rendered = seatStylePending.Render(rendered)
			}
			if cell.cursor {
				rendered = cursorStyle.Render(rendered)
			}
			b.WriteString(rendered)
			if c < cols {
				b.WriteString(" ")
			}
		}
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, label))
	}

	total := seats.Capacity()
	selected := len(m.pending)
	legend := "Legend: [] available • XX booked • <> selected • highlighted cursor"
	percent := float64(seats.AvailableSeats()) / float64(max(1, total)) * 100
	counts := fmt.Sprintf("Available: %d • Selected: %d • Booked: %d • Total: %d • %.0f%% available", available+selected, selected, booked, total, percent)
	cursorLine := fmt.Sprintf("Cursor: Row %d, Seat %d", m.cursor.Row, m.cursor.Column)
	return b.String() + "\n" + hint(legend) + "\n" + hint(counts) + "\n" + hint(cursorLine)
}

func (m appModel) seatCell(seat model.Seat) seatCell {
	cell := seatCell{
		token:  "[]",
		status: "available",
		cursor: seat == m.cursor,
	}
	if booked, err := m.show.Seats.IsBooked(seat.Row, seat.Column); err == nil && booked {
		cell.token = "XX"
		cell.status = "booked"
		return cell
	}
	if m.pending[seat] {
		cell.token = "<>"
		cell.status = "pending"
	}
	return cell
}

func (m appModel) summaryView() string {
	chip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)

	if m.lastBooking == nil {
		return chip.Render("Nothing booked") + "\n\n" + hint("Press enter to pick another movie.")
	}
	booking := m.lastBooking

	labels := make([]string, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		labels = append(labels, fmt.Sprintf("Row %d, Seat %d", seat.Row, seat.Column))
	}
	content := strings.Join([]string{
		chip.Render("Booking Confirmed"),
		"",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("\"%s\" at %s", booking.Movie, booking.Show)),
		"",
		strings.Join(labels, "\n"),
		"",
		hint(fmt.Sprintf("Reference: %s", booking.ID)),
		"",
		"Enjoy your movie!",
	}, "\n")

	return lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(content)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
