package timeline

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderDailyTimeline(timeline DailyTimeline) (string, error)
}

// CsvRendererImpl renders the daily timeline as a day-by-project matrix of hours,
// closed by a SUM column and a Total row.
type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (r *CsvRendererImpl) RenderDailyTimeline(timeline DailyTimeline) (string, error) {
	projectNames := sortedKeys(timeline.Summary.ProjectTotals)

	header := make([]string, 0, len(projectNames)+2)
	header = append(header, "")
	header = append(header, projectNames...)
	header = append(header, "SUM")

	data := make([][]string, 0, len(timeline.Days)+2)
	data = append(data, header)

	total := 0.0
	for _, date := range sortedKeys(timeline.Days) {
		day := timeline.Days[date]
		row := make([]string, 0, len(header))
		row = append(row, date)
		for _, name := range projectNames {
			row = append(row, hoursToString(day.Projects[name].TotalHours))
		}
		row = append(row, hoursToString(day.DayTotal))
		data = append(data, row)
		total += day.DayTotal
	}

	totals := make([]string, 0, len(header))
	totals = append(totals, "Total")
	for _, name := range projectNames {
		totals = append(totals, hoursToString(timeline.Summary.ProjectTotals[name].Hours))
	}
	totals = append(totals, hoursToString(roundTenth(total)))
	data = append(data, totals)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func hoursToString(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 1, 64)
}
