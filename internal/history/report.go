package history

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"

	"github.com/Michaelcode2/pricechecker/internal/domain"
)

type csvRow struct {
	Barcode       string `csv:"barcode"`
	Name          string `csv:"name"`
	Measurement   string `csv:"measurement"`
	Price         string `csv:"price"`
	DiscountPrice string `csv:"discount_price"`
	Timestamp     string `csv:"timestamp"`
}

// WriteCSV exports entries, newest first, as CSV with a header row.
func WriteCSV(w io.Writer, entries []domain.HistoryEntry) error {
	rows := make([]*csvRow, 0, len(entries))
	for _, e := range entries {
		row := &csvRow{
			Barcode:     e.Barcode,
			Name:        e.Product.Name,
			Measurement: e.Product.Measurement,
			Price:       fmt.Sprintf("%.2f", e.Product.Price),
			Timestamp:   e.Timestamp.Format(domain.HistoryTimeLayout),
		}
		if d, ok := e.Product.Discount(); ok {
			row.DiscountPrice = fmt.Sprintf("%.2f", d)
		}
		rows = append(rows, row)
	}
	return gocsv.Marshal(&rows, w)
}

const xlsxSheet = "Sheet1"

var xlsxHeader = []string{"barcode", "name", "measurement", "price", "discount_price", "timestamp"}

// WriteXLSX exports entries as a single-sheet workbook with the same columns as WriteCSV.
// Prices are stored as numbers.
func WriteXLSX(w io.Writer, entries []domain.HistoryEntry) error {
	xlsx := excelize.NewFile()
	for i, h := range xlsxHeader {
		xlsx.SetCellValue(xlsxSheet, cellName(i, 1), h)
	}
	for n, e := range entries {
		row := n + 2
		xlsx.SetCellValue(xlsxSheet, cellName(0, row), e.Barcode)
		xlsx.SetCellValue(xlsxSheet, cellName(1, row), e.Product.Name)
		xlsx.SetCellValue(xlsxSheet, cellName(2, row), e.Product.Measurement)
		xlsx.SetCellValue(xlsxSheet, cellName(3, row), e.Product.Price)
		if d, ok := e.Product.Discount(); ok {
			xlsx.SetCellValue(xlsxSheet, cellName(4, row), d)
		}
		xlsx.SetCellValue(xlsxSheet, cellName(5, row), e.Timestamp.Format(domain.HistoryTimeLayout))
	}
	return xlsx.Write(w)
}

func cellName(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}

// Summary describes the prices seen in a history snapshot.
type Summary struct {
	Count      int
	Discounted int
	Min        float64
	Max        float64
	Mean       float64
	Median     float64
}

// Summarize computes price statistics over entries. An empty history gives a zero Summary.
func Summarize(entries []domain.HistoryEntry) (Summary, error) {
	sum := Summary{Count: len(entries)}
	if len(entries) == 0 {
		return sum, nil
	}
	prices := make(stats.Float64Data, 0, len(entries))
	for _, e := range entries {
		prices = append(prices, e.Product.Price)
		if _, ok := e.Product.Discount(); ok {
			sum.Discounted++
		}
	}

	var err error
	if sum.Min, err = prices.Min(); err != nil {
		return Summary{}, err
	}
	if sum.Max, err = prices.Max(); err != nil {
		return Summary{}, err
	}
	mean, err := prices.Mean()
	if err != nil {
		return Summary{}, err
	}
	if sum.Mean, err = stats.Round(mean, 2); err != nil {
		return Summary{}, err
	}
	median, err := prices.Median()
	if err != nil {
		return Summary{}, err
	}
	if sum.Median, err = stats.Round(median, 2); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
