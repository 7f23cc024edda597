package analytics

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX exports the funnel report as a workbook with summary, step,
// device and drop-off sheets.
func WriteXLSX(report *Report, path string) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "analytics: add summary sheet")
	}
	addRow(summary, "Since", report.Since.Format(time.RFC3339))
	addRow(summary, "Generated", report.GeneratedAt.Format(time.RFC3339))
	addRow(summary, "Total sessions", report.TotalSessions)
	addRow(summary, "Completed sessions", report.CompletedSessions)
	addRow(summary, "Conversion %", report.ConversionPct)
	addRow(summary)
	addRow(summary, "Event type", "Count")
	for _, t := range sortedKeys(report.EventCounts) {
		addRow(summary, string(t), report.EventCounts[t])
	}

	steps, err := f.AddSheet("Steps")
	if err != nil {
		return eris.Wrap(err, "analytics: add steps sheet")
	}
	addRow(steps, "Step", "Name", "Views", "Completions", "Completion %")
	for _, st := range report.Steps {
		addRow(steps, st.StepNumber, st.StepName, st.Views, st.Completions, st.CompletionPct)
	}

	devices, err := f.AddSheet("Devices")
	if err != nil {
		return eris.Wrap(err, "analytics: add devices sheet")
	}
	addRow(devices, "Device", "Sessions")
	for _, device := range sortedKeys(report.DeviceBreakdown) {
		addRow(devices, device, report.DeviceBreakdown[device])
	}

	dropOff, err := f.AddSheet("Drop-off")
	if err != nil {
		return eris.Wrap(err, "analytics: add drop-off sheet")
	}
	addRow(dropOff, "Last step", "Sessions")
	for _, step := range sortedKeys(report.DropOffByLastStep) {
		addRow(dropOff, step, report.DropOffByLastStep[step])
	}

	return eris.Wrap(f.Save(path), "analytics: save xlsx")
}

func addRow(sheet *xlsx.Sheet, values ...any) {
	row := sheet.AddRow()
	for _, v := range values {
		cell := row.AddCell()
		switch val := v.(type) {
		case string:
			cell.SetString(val)
		case int:
			cell.SetInt(val)
		case float64:
			cell.SetFloat(val)
		default:
			cell.SetValue(val)
		}
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
