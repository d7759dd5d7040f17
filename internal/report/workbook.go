package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"adsboard/internal/aggregate"
)

// WriteWorkbook writes the daily export attached to the 14:00 report: one
// sheet of channel daily summaries and one of per-agent totals.
func WriteWorkbook(path string, channel []aggregate.ChannelSummary, agents []aggregate.AgentTotals) error {
	f := excelize.NewFile()
	defer f.Close()

	const channelSheet = "Channel Summary"
	const agentSheet = "Agent KPI"

	f.SetSheetName("Sheet1", channelSheet)
	if _, err := f.NewSheet(agentSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", agentSheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := []any{"Date", "Channel", "Register", "FTD", "Deposit", "Cost", "CPR", "ROAS"}
	if err := f.SetSheetRow(channelSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(channelSheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, s := range channel {
		row := []any{s.Key, s.Channel, s.Register, s.FTD, s.DepositAmount, s.Cost, s.CPR, s.ROAS}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(channelSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	agentHeader := []any{"Agent", "Spend", "Register", "FTD", "Conv Rate", "CPR"}
	if err := f.SetSheetRow(agentSheet, "A1", &agentHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(agentSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, a := range agents {
		row := []any{a.Agent, a.Spend, a.Register, a.FTD, a.ConvRate, a.CPR}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(agentSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
