package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub-dev/studyhub/internal/api/v1/handlers"
)

// Flag names
const (
	flagName        = "name"
	flagDescription = "description"
	flagCourseName  = "course-name"
	flagCourseCode  = "course-code"
	flagDueDate     = "due-date"
	flagPage        = "page"
	flagID          = "id"
)

// GetProjectsCmd returns the projects command group
func GetProjectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage study projects",
	}

	projectsCmd.AddCommand(createProjectCmd)
	projectsCmd.AddCommand(getProjectCmd)
	projectsCmd.AddCommand(listProjectsCmd)
	projectsCmd.AddCommand(deleteProjectCmd)

	return projectsCmd
}

func init() {
	// Add flags for create
	createProjectCmd.Flags().StringP(flagName, "n", "", "Project name")
	createProjectCmd.Flags().StringP(flagDescription, "d", "", "Project description")
	createProjectCmd.Flags().String(flagCourseName, "", "Course name")
	createProjectCmd.Flags().String(flagCourseCode, "", "Course code")
	createProjectCmd.Flags().String(flagDueDate, "", "Project due date (YYYY-MM-DD)")
	if err := createProjectCmd.MarkFlagRequired(flagName); err != nil {
		panic(fmt.Errorf("failed to mark name flag as required for create project command: %w", err))
	}

	// Add flags for get
	getProjectCmd.Flags().Uint(flagID, 0, "Project ID")
	if err := getProjectCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for get project command: %w", err))
	}

	// Add flags for list
	listProjectsCmd.Flags().IntP(flagPage, "p", 1, "Page number for pagination")

	// Add flags for delete
	deleteProjectCmd.Flags().Uint(flagID, 0, "Project ID")
	if err := deleteProjectCmd.MarkFlagRequired(flagID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for delete project command: %w", err))
	}
}

// printJSON pretty prints a value as indented JSON
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

var createProjectCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return fmt.Errorf("error getting name flag: %w", err)
		}
		description, err := cmd.Flags().GetString(flagDescription)
		if err != nil {
			return fmt.Errorf("error getting description flag: %w", err)
		}
		courseName, err := cmd.Flags().GetString(flagCourseName)
		if err != nil {
			return fmt.Errorf("error getting course-name flag: %w", err)
		}
		courseCode, err := cmd.Flags().GetString(flagCourseCode)
		if err != nil {
			return fmt.Errorf("error getting course-code flag: %w", err)
		}
		dueRaw, err := cmd.Flags().GetString(flagDueDate)
		if err != nil {
			return fmt.Errorf("error getting due-date flag: %w", err)
		}

		params := handlers.ProjectCreateParams{
			Name:        name,
			Description: description,
			CourseName:  courseName,
			CourseCode:  courseCode,
		}
		if dueRaw != "" {
			due, err := time.Parse("2006-01-02", dueRaw)
			if err != nil {
				return fmt.Errorf("invalid due date %q: %w", dueRaw, err)
			}
			params.DueDate = &due
		}

		project, err := apiClient.CreateProject(context.Background(), params)
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}
		return printJSON(project)
	},
}

var getProjectCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagID)
		if err != nil {
			return fmt.Errorf("error getting id flag: %w", err)
		}

		project, err := apiClient.GetProject(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting project: %w", err)
		}
		return printJSON(project)
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := cmd.Flags().GetInt(flagPage)
		if err != nil {
			return fmt.Errorf("error getting page flag: %w", err)
		}

		projects, err := apiClient.ListProjects(context.Background(), page)
		if err != nil {
			return fmt.Errorf("error listing projects: %w", err)
		}
		return printJSON(projects)
	},
}

var deleteProjectCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagID)
		if err != nil {
			return fmt.Errorf("error getting id flag: %w", err)
		}

		if err := apiClient.DeleteProject(context.Background(), id); err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}
		fmt.Println("Project deleted")
		return nil
	},
}
