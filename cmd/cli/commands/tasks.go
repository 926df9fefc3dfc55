package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyhub-dev/studyhub/internal/api/v1/handlers"
)

// Task flag names
const (
	flagProjectID = "project-id"
	flagTitle     = "title"
	flagStatus    = "status"
	flagPriority  = "priority"
	flagPosition  = "position"
)

// GetTasksCmd returns the tasks command group
func GetTasksCmd() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage project tasks",
	}

	tasksCmd.AddCommand(createTaskCmd)
	tasksCmd.AddCommand(listTasksCmd)
	tasksCmd.AddCommand(moveTaskCmd)

	return tasksCmd
}

func init() {
	// Add flags for create
	createTaskCmd.Flags().Uint(flagProjectID, 0, "Project ID")
	createTaskCmd.Flags().StringP(flagTitle, "n", "", "Task title")
	createTaskCmd.Flags().StringP(flagDescription, "d", "", "Task description")
	createTaskCmd.Flags().String(flagPriority, "", "Task priority (low, medium, high)")
	if err := createTaskCmd.MarkFlagRequired(flagProjectID); err != nil {
		panic(fmt.Errorf("failed to mark project-id flag as required for create task command: %w", err))
	}
	if err := createTaskCmd.MarkFlagRequired(flagTitle); err != nil {
		panic(fmt.Errorf("failed to mark title flag as required for create task command: %w", err))
	}

	// Add flags for list
	listTasksCmd.Flags().Uint(flagProjectID, 0, "Project ID")
	if err := listTasksCmd.MarkFlagRequired(flagProjectID); err != nil {
		panic(fmt.Errorf("failed to mark project-id flag as required for list tasks command: %w", err))
	}

	// Add flags for move
	moveTaskCmd.Flags().Uint(flagID, 0, "Task ID")
	moveTaskCmd.Flags().String(flagStatus, "", "Target status (todo, in_progress, review, done)")
	moveTaskCmd.Flags().Int(flagPosition, 0, "Target position within the status column")
	if err := moveTaskCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for move task command: %w", err))
	}
	if err := moveTaskCmd.MarkFlagRequired(flagStatus); err != nil {
		panic(fmt.Errorf("failed to mark status flag as required for move task command: %w", err))
	}
}

var createTaskCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project-id flag: %w", err)
		}
		title, err := cmd.Flags().GetString(flagTitle)
		if err != nil {
			return fmt.Errorf("error getting title flag: %w", err)
		}
		description, err := cmd.Flags().GetString(flagDescription)
		if err != nil {
			return fmt.Errorf("error getting description flag: %w", err)
		}
		priority, err := cmd.Flags().GetString(flagPriority)
		if err != nil {
			return fmt.Errorf("error getting priority flag: %w", err)
		}

		params := handlers.TaskCreateParams{
			Title:       title,
			Description: description,
			Priority:    priority,
		}

		task, err := apiClient.CreateTask(context.Background(), projectID, params)
		if err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}
		return printJSON(task)
	},
}

var listTasksCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks of a project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project-id flag: %w", err)
		}

		tasks, err := apiClient.ListTasks(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error listing tasks: %w", err)
		}
		return printJSON(tasks)
	},
}

var moveTaskCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a task to a new status and position",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagID)
		if err != nil {
			return fmt.Errorf("error getting id flag: %w", err)
		}
		status, err := cmd.Flags().GetString(flagStatus)
		if err != nil {
			return fmt.Errorf("error getting status flag: %w", err)
		}
		position, err := cmd.Flags().GetInt(flagPosition)
		if err != nil {
			return fmt.Errorf("error getting position flag: %w", err)
		}

		params := handlers.TaskMoveParams{
			Status:   status,
			Position: position,
		}
		if err := apiClient.MoveTask(context.Background(), id, params); err != nil {
			return fmt.Errorf("error moving task: %w", err)
		}
		fmt.Println("Task moved")
		return nil
	},
}
