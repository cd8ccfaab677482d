package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"prodflow/internal/domain"
)

var stageLabels = map[domain.StageKey]string{
	domain.StageDesign:        "Design",
	domain.StageValidation:    "Technical Validation",
	domain.StagePurchasing:    "Purchasing",
	domain.StageWarehouse:     "Warehouse / Reception",
	domain.StageManufacturing: "Manufacturing",
}

// RenderReport produces the plain-text study report: header info plus the
// per-stage estimate schedule. It consumes a read-only snapshot.
func (s *Service) RenderReport(ctx context.Context, studyID int64) (string, error) {
	st, err := s.Get(ctx, studyID)
	if err != nil {
		return "", err
	}

	names := map[int64]string{}
	if users, err := s.users.GetAll(ctx); err == nil {
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	var b strings.Builder
	b.WriteString("PROJECT STUDY\n\n")

	info := table.NewWriter()
	info.AppendRows([]table.Row{
		{"Project", st.Name},
		{"Client", st.ClientName},
		{"Description", st.Description},
		{"Total duration", fmt.Sprintf("%d days", st.TotalEstimatedDays)},
		{"Estimated start", formatDate(st.EstimatedStartDate)},
		{"Estimated end", formatDate(st.EstimatedEndDate)},
		{"Status", string(st.Status)},
	})
	b.WriteString(info.Render())
	b.WriteString("\n\nESTIMATED SCHEDULE BY STAGE\n\n")

	schedule := table.NewWriter()
	schedule.AppendHeader(table.Row{"Stage", "Estimated days", "Notes", "Estimated by"})
	for _, key := range domain.StageKeys {
		est := st.Stage(key)
		if est == nil {
			continue
		}

		estimatedBy := "pending"
		if est.EstimatedBy != nil {
			if name, ok := names[*est.EstimatedBy]; ok {
				estimatedBy = name
			} else {
				estimatedBy = "user"
			}
		}

		notes := est.Notes
		if notes == "" {
			notes = "-"
		}

		schedule.AppendRow(table.Row{stageLabels[key], fmt.Sprintf("%d days", est.EstimatedDays), notes, estimatedBy})
	}
	b.WriteString(schedule.Render())
	b.WriteString(fmt.Sprintf("\n\nGenerated at %s\n", time.Now().UTC().Format("02/01/2006 15:04")))

	return b.String(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "to be defined"
	}
	return t.Format("2006-01-02")
}
