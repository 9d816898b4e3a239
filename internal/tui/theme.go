package tui

import (
	"github.com/charmbracelet/lipgloss"

	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

// Theme defines the color palette for the terminal. All colors use
// lipgloss ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Brand accent used for headers and the ticket band.
	Accent lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme is the built-in green-on-dark palette.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("22"),
	SelectedForeground: lipgloss.Color("255"),

	Accent: lipgloss.Color("35"),

	Success: lipgloss.Color("42"),
	Warning: lipgloss.Color("214"),
	Error:   lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("245"),
}

// TransactionStatusColor returns the color for a transaction status,
// FaintText for unknown values.
func (theme Theme) TransactionStatusColor(status models.TransactionStatus) lipgloss.Color {
	switch status {
	case models.TransactionCompleted:
		return theme.Success
	case models.TransactionRefunded:
		return theme.Warning
	case models.TransactionFailed:
		return theme.Error
	default:
		return theme.FaintText
	}
}

// CheckoutStateColor returns the color used for the checkout title.
func (theme Theme) CheckoutStateColor(state services.CheckoutState) lipgloss.Color {
	switch state {
	case services.StateSuccess:
		return theme.Success
	case services.StatePaymentFailed:
		return theme.Error
	case services.StateProcessing:
		return theme.Warning
	default:
		return theme.Accent
	}
}
