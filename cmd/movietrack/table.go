package main

import (
	"fmt"
	"strings"

	"movietracker/library"
	"movietracker/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

func renderRecords(records []models.MovieRecord, withRank bool) string {
	headers := []string{"Title", "Year", "Genres", "Director", "IMDB"}
	if withRank {
		headers = append([]string{"Rank"}, headers...)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rating := ""
		if record.RatingIMDB != nil {
			rating = fmt.Sprintf("%.1f", *record.RatingIMDB)
		}
		row := []string{record.Title, record.Year, strings.Join(record.Genres, ", "), record.Director, rating}
		if withRank {
			rank := ""
			if record.Rank != nil {
				rank = fmt.Sprintf("%d", *record.Rank)
			}
			row = append([]string{rank}, row...)
		}
		rows = append(rows, row)
	}

	return renderTable(headers, rows)
}

func renderSummary(summary *library.Summary) string {
	rows := [][]string{
		{"Added", fmt.Sprintf("%d", len(summary.Added)), strings.Join(summary.Added, ", ")},
		{"Already tracked", fmt.Sprintf("%d", len(summary.Skipped)), strings.Join(summary.Skipped, ", ")},
		{"Not found", fmt.Sprintf("%d", len(summary.NotFound)), strings.Join(summary.NotFound, ", ")},
		{"Unavailable", fmt.Sprintf("%d", len(summary.Failed)), strings.Join(summary.Failed, ", ")},
	}
	return renderTable([]string{"Outcome", "Count", "Titles"}, rows)
}
