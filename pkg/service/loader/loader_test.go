package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
	"github.com/saurabh-lab/project-dashboard/pkg/service/loader"
)

const issuesHeader = "IssueID,Type,SprintID,Status,Assignee,StoryPoints,CreatedDate,ClosedDate,Priority"

func TestReadIssues(t *testing.T) {
	t.Run("parses rows and fills blank points with zero", func(t *testing.T) {
		input := issuesHeader + "\n" +
			"ISS-1,Story,SPRINT-1,Done,alice,5,2025-01-06,2025-01-17,High\n" +
			"ISS-2,Task,SPRINT-1,In Progress,bob,,2025-01-07,,Medium\n"

		issues, err := loader.ReadIssues(strings.NewReader(input))
		gt.NoError(t, err).Required()
		gt.Array(t, issues).Length(2).Required()

		gt.Value(t, issues[0].ID).Equal("ISS-1")
		gt.Value(t, issues[0].Type).Equal(types.IssueTypeStory)
		gt.Value(t, issues[0].StoryPoints).Equal(5)
		gt.Value(t, issues[0].CreatedDate != nil).Equal(true)
		gt.Value(t, issues[0].ClosedDate != nil).Equal(true)

		gt.Value(t, issues[1].StoryPoints).Equal(0)
		gt.Value(t, issues[1].ClosedDate == nil).Equal(true)
	})

	t.Run("non-numeric story points fail with row number", func(t *testing.T) {
		input := issuesHeader + "\n" +
			"ISS-1,Story,SPRINT-1,Done,alice,5,2025-01-06,,High\n" +
			"ISS-2,Story,SPRINT-1,Done,bob,many,2025-01-06,,High\n"

		_, err := loader.ReadIssues(strings.NewReader(input))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, loader.ErrInvalidRow)).Equal(true)
		gt.Value(t, strings.Contains(err.Error(), "story points")).Equal(true)
	})

	t.Run("unparsable dates yield nil not error", func(t *testing.T) {
		input := issuesHeader + "\n" +
			"ISS-1,Story,SPRINT-1,Done,alice,5,not-a-date,TBD,High\n"

		issues, err := loader.ReadIssues(strings.NewReader(input))
		gt.NoError(t, err).Required()
		gt.Value(t, issues[0].CreatedDate == nil).Equal(true)
		gt.Value(t, issues[0].ClosedDate == nil).Equal(true)
	})

	t.Run("missing columns fail with table and column names", func(t *testing.T) {
		input := "IssueID,Type,Status\nISS-1,Story,Done\n"

		_, err := loader.ReadIssues(strings.NewReader(input))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, loader.ErrMissingColumns)).Equal(true)
		gt.Value(t, strings.Contains(err.Error(), "missing required columns")).Equal(true)
	})
}

func TestReadDefects(t *testing.T) {
	t.Run("parses defect rows", func(t *testing.T) {
		input := "DefectID,Severity,Priority,Status,RaisedIn,Phase,Owner,DateRaised,DateClosed\n" +
			"DEF-1,High,P1,Open,SPRINT-2,SIT,carol,2025-02-03,\n" +
			"DEF-2,Low,P3,Closed,SPRINT-1,UAT,dave,2025-01-20,2025-01-25\n"

		defects, err := loader.ReadDefects(strings.NewReader(input))
		gt.NoError(t, err).Required()
		gt.Array(t, defects).Length(2).Required()

		gt.Value(t, defects[0].Status).Equal(types.DefectStatusOpen)
		gt.Value(t, defects[0].RaisedIn).Equal(types.SprintID("SPRINT-2"))
		gt.Value(t, defects[0].Phase).Equal("SIT")
		gt.Value(t, defects[0].DateClosed == nil).Equal(true)
		gt.Value(t, defects[1].DateClosed != nil).Equal(true)
	})

	t.Run("missing columns fail hard", func(t *testing.T) {
		input := "DefectID,Severity\nDEF-1,High\n"
		_, err := loader.ReadDefects(strings.NewReader(input))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, loader.ErrMissingColumns)).Equal(true)
	})
}

func TestReadRAID(t *testing.T) {
	t.Run("parses RAID rows", func(t *testing.T) {
		input := "ID,Type,Description,Owner,Status,Impact,Probability,Mitigation,TargetDate\n" +
			"RAID-1,Risk,Vendor delay,erin,Open,High,Medium,Escalate weekly,2025-03-01\n" +
			"RAID-2,Dependency,Upstream API,frank,Closed,Medium,,,\n"

		items, err := loader.ReadRAID(strings.NewReader(input))
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(2).Required()

		gt.Value(t, items[0].Category).Equal(types.RAIDCategoryRisk)
		gt.Value(t, items[0].Status).Equal(types.RAIDStatusOpen)
		gt.Value(t, items[0].TargetDate != nil).Equal(true)
		gt.Value(t, items[1].TargetDate == nil).Equal(true)
	})
}

func TestLoadDataset(t *testing.T) {
	writeFile := func(t *testing.T, dir, name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
		return path
	}

	t.Run("builds deduplicated ordinal-sorted sprint axis", func(t *testing.T) {
		dir := t.TempDir()
		issues := writeFile(t, dir, "issues.csv", issuesHeader+"\n"+
			"ISS-1,Story,SPRINT-10,Done,alice,5,,,High\n"+
			"ISS-2,Story,SPRINT-2,Done,bob,3,,,High\n"+
			"ISS-3,Task,SPRINT-2,Done,bob,0,,,Low\n"+
			"ISS-4,Story,BACKLOG,To Do,carol,8,,,Medium\n")
		defects := writeFile(t, dir, "defects.csv",
			"DefectID,Severity,Priority,Status,RaisedIn,Phase,Owner,DateRaised,DateClosed\n")
		raid := writeFile(t, dir, "raid.csv",
			"ID,Type,Description,Owner,Status,Impact,Probability,Mitigation,TargetDate\n")

		ds, err := loader.LoadDataset(context.Background(), issues, defects, raid)
		gt.NoError(t, err).Required()

		// SPRINT-2 before SPRINT-10 (ordinal order, not lexical), BACKLOG excluded
		gt.Array(t, ds.Sprints).Equal([]types.SprintID{"SPRINT-2", "SPRINT-10"})
		gt.Array(t, ds.Issues).Length(4)
	})

	t.Run("missing file surfaces as error", func(t *testing.T) {
		dir := t.TempDir()
		defects := writeFile(t, dir, "defects.csv",
			"DefectID,Severity,Priority,Status,RaisedIn,Phase,Owner,DateRaised,DateClosed\n")
		raid := writeFile(t, dir, "raid.csv",
			"ID,Type,Description,Owner,Status,Impact,Probability,Mitigation,TargetDate\n")

		_, err := loader.LoadDataset(context.Background(), filepath.Join(dir, "absent.csv"), defects, raid)
		gt.Error(t, err)
	})
}
