package loader

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/safe"
)

// Sentinel errors for data loading
var (
	ErrMissingColumns = goerr.New("required columns are missing")
	ErrInvalidRow     = goerr.New("invalid row value")
)

const dateLayout = "2006-01-02"

var issueColumns = []string{
	"IssueID", "Type", "SprintID", "Status", "Assignee",
	"StoryPoints", "CreatedDate", "ClosedDate", "Priority",
}

var defectColumns = []string{
	"DefectID", "Severity", "Priority", "Status", "RaisedIn",
	"Phase", "Owner", "DateRaised", "DateClosed",
}

var raidColumns = []string{
	"ID", "Type", "Description", "Owner", "Status",
	"Impact", "Probability", "Mitigation", "TargetDate",
}

// LoadDataset reads and cleans the three CSV exports and assembles the
// canonical sprint axis from the issue log.
func LoadDataset(ctx context.Context, issuesPath, defectsPath, raidPath string) (*model.Dataset, error) {
	issues, err := loadFile(ctx, issuesPath, ReadIssues)
	if err != nil {
		return nil, err
	}
	defects, err := loadFile(ctx, defectsPath, ReadDefects)
	if err != nil {
		return nil, err
	}
	raid, err := loadFile(ctx, raidPath, ReadRAID)
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{
		Issues:   issues,
		Defects:  defects,
		RAID:     raid,
		Sprints:  sprintAxis(issues),
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
	}

	logging.From(ctx).Info("dataset loaded",
		"issues", len(ds.Issues),
		"defects", len(ds.Defects),
		"raid_items", len(ds.RAID),
		"sprints", len(ds.Sprints),
	)

	return ds, nil
}

func loadFile[T any](ctx context.Context, path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	// #nosec G304 - path is provided by CLI argument
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open input file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	rows, err := read(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return rows, nil
}

// ReadIssues parses the issue tracker export.
// Blank story points fill zero; non-numeric values fail with the row number.
func ReadIssues(r io.Reader) ([]*model.Issue, error) {
	table, err := readTable(r, "issues", issueColumns)
	if err != nil {
		return nil, err
	}

	issues := make([]*model.Issue, 0, len(table.rows))
	for i, row := range table.rows {
		points, err := parsePoints(table.get(row, "StoryPoints"))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid story points",
				goerr.V("table", "issues"),
				goerr.V("row", i+2), // 1-based, after header
			)
		}

		issues = append(issues, &model.Issue{
			ID:          table.get(row, "IssueID"),
			Type:        types.IssueType(table.get(row, "Type")),
			SprintID:    types.SprintID(table.get(row, "SprintID")),
			Status:      types.IssueStatus(table.get(row, "Status")),
			Assignee:    table.get(row, "Assignee"),
			StoryPoints: points,
			CreatedDate: parseDate(table.get(row, "CreatedDate")),
			ClosedDate:  parseDate(table.get(row, "ClosedDate")),
			Priority:    table.get(row, "Priority"),
		})
	}
	return issues, nil
}

// ReadDefects parses the defect log export
func ReadDefects(r io.Reader) ([]*model.Defect, error) {
	table, err := readTable(r, "defects", defectColumns)
	if err != nil {
		return nil, err
	}

	defects := make([]*model.Defect, 0, len(table.rows))
	for _, row := range table.rows {
		defects = append(defects, &model.Defect{
			ID:         table.get(row, "DefectID"),
			Severity:   types.DefectSeverity(table.get(row, "Severity")),
			Priority:   table.get(row, "Priority"),
			Status:     types.DefectStatus(table.get(row, "Status")),
			RaisedIn:   types.SprintID(table.get(row, "RaisedIn")),
			Phase:      table.get(row, "Phase"),
			Owner:      table.get(row, "Owner"),
			DateRaised: parseDate(table.get(row, "DateRaised")),
			DateClosed: parseDate(table.get(row, "DateClosed")),
		})
	}
	return defects, nil
}

// ReadRAID parses the RAID log export
func ReadRAID(r io.Reader) ([]*model.RAIDItem, error) {
	table, err := readTable(r, "raid", raidColumns)
	if err != nil {
		return nil, err
	}

	items := make([]*model.RAIDItem, 0, len(table.rows))
	for _, row := range table.rows {
		items = append(items, &model.RAIDItem{
			ID:          table.get(row, "ID"),
			Category:    types.RAIDCategory(table.get(row, "Type")),
			Description: table.get(row, "Description"),
			Owner:       table.get(row, "Owner"),
			Status:      types.RAIDStatus(table.get(row, "Status")),
			Impact:      table.get(row, "Impact"),
			Probability: table.get(row, "Probability"),
			Mitigation:  table.get(row, "Mitigation"),
			TargetDate:  parseDate(table.get(row, "TargetDate")),
		})
	}
	return items, nil
}

// csvTable holds a parsed CSV with a column name index
type csvTable struct {
	index map[string]int
	rows  [][]string
}

func (t *csvTable) get(row []string, column string) string {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readTable reads all CSV records and validates the required column set.
// Missing columns fail hard with the table name and every absent column.
func readTable(r io.Reader, table string, required []string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse CSV", goerr.V("table", table))
	}
	if len(records) == 0 {
		return nil, goerr.Wrap(ErrMissingColumns, "empty CSV input",
			goerr.V("table", table),
			goerr.V("columns", required),
		)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, goerr.Wrap(ErrMissingColumns, "table is missing required columns",
			goerr.V("table", table),
			goerr.V("columns", missing),
		)
	}

	return &csvTable{index: index, rows: records[1:]}, nil
}

// parsePoints converts a story point cell to an int.
// Blank cells mean "not estimated" and fill zero.
func parsePoints(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidRow, "story points must be numeric", goerr.V("value", v))
	}
	return n, nil
}

// parseDate converts a date cell to a time pointer.
// Blank or unparsable cells mean "unknown" and yield nil.
func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

// sprintAxis builds the canonical sprint axis: deduplicated sprint IDs
// with a parsable ordinal, sorted ascending by ordinal.
func sprintAxis(issues []*model.Issue) []types.SprintID {
	seen := make(map[types.SprintID]int)
	for _, issue := range issues {
		if _, ok := seen[issue.SprintID]; ok {
			continue
		}
		if n, ok := issue.SprintID.Ordinal(); ok {
			seen[issue.SprintID] = n
		}
	}

	axis := make([]types.SprintID, 0, len(seen))
	for id := range seen {
		axis = append(axis, id)
	}
	sort.Slice(axis, func(i, j int) bool {
		return seen[axis[i]] < seen[axis[j]]
	})
	return axis
}
