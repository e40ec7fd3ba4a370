package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/selforge/internal/cli"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/tracker"

	"github.com/spf13/cobra"
)

var flagStudyStatus string

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Plan and check off today's study topics",
	RunE:  runStudyList,
}

var studyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's topics",
	Args:  cobra.NoArgs,
	RunE:  runStudyList,
}

var studyAddCmd = &cobra.Command{
	Use:     "add SUBJECT [CHAPTER]",
	Short:   "Add a topic to today's plan",
	Example: "  selforge study add math \"limits and continuity\"",
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runStudyAdd,
}

var studySetCmd = &cobra.Command{
	Use:   "set ID done|pending|later",
	Short: "Change a topic's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runStudySet,
}

var studyRenameCmd = &cobra.Command{
	Use:   "rename ID SUBJECT [CHAPTER]",
	Short: "Rename a topic",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runStudyRename,
}

var studyRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudyRm,
}

func init() {
	studyAddCmd.Flags().StringVar(&flagStudyStatus, "status", string(model.StudyPending), "Initial status")
	studyCmd.AddCommand(studyListCmd, studyAddCmd, studySetCmd, studyRenameCmd, studyRmCmd)
	rootCmd.AddCommand(studyCmd)
}

func runStudyList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	day := s.tracker.Today()
	fmt.Println()
	if len(day.StudyTopics) == 0 {
		fmt.Println("  No topics planned today. Add one with `selforge study add SUBJECT`.")
		return nil
	}
	fmt.Print(cli.RenderTable(studyTable(day.StudyTopics)))
	printStudyGoal(day)
	return nil
}

func runStudyAdd(_ *cobra.Command, args []string) error {
	status, err := model.ParseStudyStatus(flagStudyStatus)
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	chapter := ""
	if len(args) == 2 {
		chapter = args[1]
	}
	topic, err := s.tracker.AddStudyTopic(args[0], chapter, status)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %s (%s)\n", topicLabel(topic), shortID(topic.ID))
	printStudyGoal(s.tracker.Today())
	return nil
}

func runStudySet(_ *cobra.Command, args []string) error {
	status, err := model.ParseStudyStatus(args[1])
	if err != nil {
		return err
	}
	return withTopic(args[0], func(t *tracker.Tracker, topic model.StudyTopic) error {
		if err := t.SetStudyStatus(topic.ID, status); err != nil {
			return err
		}
		fmt.Printf("  %s marked %s\n", topicLabel(topic), status)
		return nil
	})
}

func runStudyRename(_ *cobra.Command, args []string) error {
	chapter := ""
	if len(args) == 3 {
		chapter = args[2]
	}
	return withTopic(args[0], func(t *tracker.Tracker, topic model.StudyTopic) error {
		if err := t.RenameStudyTopic(topic.ID, args[1], chapter); err != nil {
			return err
		}
		fmt.Printf("  Renamed %s\n", topicLabel(topic))
		return nil
	})
}

func runStudyRm(_ *cobra.Command, args []string) error {
	return withTopic(args[0], func(t *tracker.Tracker, topic model.StudyTopic) error {
		if err := t.DeleteStudyTopic(topic.ID); err != nil {
			return err
		}
		fmt.Printf("  Removed %s\n", topicLabel(topic))
		return nil
	})
}

// withTopic resolves an ID prefix against today's topics and runs fn.
func withTopic(prefix string, fn func(t *tracker.Tracker, topic model.StudyTopic) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	day := s.tracker.Today()
	topic, err := findTopic(day.StudyTopics, prefix)
	if err != nil {
		return err
	}
	if err := fn(s.tracker, topic); err != nil {
		return err
	}
	printStudyGoal(s.tracker.Today())
	return nil
}

func findTopic(topics []model.StudyTopic, prefix string) (model.StudyTopic, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return model.StudyTopic{}, errors.New("topic ID is required")
	}
	var found []model.StudyTopic
	for _, t := range topics {
		if strings.HasPrefix(t.ID, prefix) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.StudyTopic{}, fmt.Errorf("no topic today with ID %q", prefix)
	case 1:
		return found[0], nil
	}
	return model.StudyTopic{}, fmt.Errorf("ID %q matches %d topics, use more characters", prefix, len(found))
}

func topicLabel(t model.StudyTopic) string {
	if t.Chapter == "" {
		return t.Subject
	}
	return t.Subject + ": " + t.Chapter
}

func printStudyGoal(day model.DailyData) {
	state := cli.Muted("open")
	if day.GoalsCompleted.Study {
		state = cli.Good("done")
	}
	if day.GoalManualOverrides.Study {
		state += cli.Muted(" (set manually)")
	}
	fmt.Printf("  Study goal: %s\n", state)
}
