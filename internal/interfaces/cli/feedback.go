package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/application/feedback"
	"github.com/secondhand/console/internal/domain/navigation"
	"github.com/secondhand/console/internal/domain/shared"
)

func newFeedbackCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "feedback",
		Short:       "Handle user feedback",
		Annotations: guarded(navigation.RouteFeedback),
	}
	cmd.AddCommand(
		newFeedbackListCommand(s),
		newFeedbackGetCommand(s),
		newFeedbackReplyCommand(s),
		newFeedbackPriorityCommand(s),
		newFeedbackCountCommand(s),
	)
	return cmd
}

func newFeedbackListCommand(s *state) *cobra.Command {
	var (
		page   pageFlags
		status int
		kind   int
	)
	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List feedback",
		Annotations: guarded(navigation.RouteFeedback),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := s.app.Feedback.List(cmd.Context(), feedback.ListQuery{
				Status:       optInt(cmd, "status", status),
				FeedbackType: optInt(cmd, "type", kind),
				PageQuery:    page.query(cmd),
			})
			if err != nil {
				return err
			}
			return s.app.Print(result)
		},
	}
	page.bind(cmd)
	cmd.Flags().IntVar(&status, "status", 0, "0 unprocessed, 1 processing, 2 processed")
	cmd.Flags().IntVar(&kind, "type", 0, "feedback type, 1 to 5")
	return cmd
}

func newFeedbackGetCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "get <feedback-id>",
		Short:       "Show one feedback item",
		Annotations: guarded(navigation.RouteFeedback),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := s.app.Feedback.Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.app.Print(item)
		},
	}
}

func newFeedbackReplyCommand(s *state) *cobra.Command {
	var (
		message string
		status  int
	)
	cmd := &cobra.Command{
		Use:         "reply <feedback-id>",
		Short:       "Answer a feedback item",
		Annotations: guarded(navigation.RouteFeedback),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := s.app.Feedback.Reply(cmd.Context(), feedback.ReplyRequest{
				FeedbackID: id,
				AdminReply: message,
				Status:     feedback.Status(status),
			})
			if err != nil {
				return err
			}
			return s.app.Print(ok)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "reply text")
	cmd.Flags().IntVar(&status, "status", int(feedback.StatusProcessed), "status after the reply")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newFeedbackPriorityCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "priority <feedback-id> <0|1|2>",
		Short:       "Set the priority of a feedback item",
		Annotations: guarded(navigation.RouteFeedback),
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			level, err := strconv.Atoi(args[1])
			if err != nil || level < int(feedback.PriorityNormal) || level > int(feedback.PriorityUrgent) {
				return fmt.Errorf("%w: priority must be 0, 1 or 2", shared.ErrInvalidInput)
			}
			ok, err := s.app.Feedback.SetPriority(cmd.Context(), id, feedback.Priority(level))
			if err != nil {
				return err
			}
			return s.app.Print(ok)
		},
	}
}

func newFeedbackCountCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "count",
		Short:       "Summarise feedback counts",
		Annotations: guarded(navigation.RouteFeedback),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := s.app.Feedback.Count(cmd.Context())
			if err != nil {
				return err
			}
			return s.app.Print(count)
		},
	}
}
