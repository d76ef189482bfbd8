package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdeck/internal/core/task"
	"github.com/colonyops/taskdeck/internal/core/validate"
	"github.com/colonyops/taskdeck/pkg/iojson"
)

// dueDateLayouts are the accepted --due formats, most specific first.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// TaskCmd implements the task mutation and view commands.
type TaskCmd struct {
	flags *Flags

	// add/edit flags
	priority string
	category string
	due      string
	tags     []string
	content  string

	// ls flags
	lsStatus   string
	lsCategory string
	lsSearch   string
	lsSort     string
	asJSON     bool

	// toggle-all flag
	uncheck bool
}

// NewTaskCmd creates the task command group.
func NewTaskCmd(flags *Flags) *TaskCmd {
	return &TaskCmd{flags: flags}
}

// Register adds the task commands to the application.
func (cmd *TaskCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands,
		cmd.addCmd(),
		cmd.lsCmd(),
		cmd.doneCmd(),
		cmd.undoneCmd(),
		cmd.editCmd(),
		cmd.rmCmd(),
		cmd.toggleAllCmd(),
		cmd.statsCmd(),
	)
	return root
}

func (cmd *TaskCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskdeck add <content> [--priority <p>] [--category <c>] [--due <date>] [--tag <t>...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high)",
				Value:       string(task.PriorityMedium),
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"c"},
				Usage:       "category (general, work, personal, study, health, shopping)",
				Value:       string(task.CategoryGeneral),
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date (2006-01-02, \"2006-01-02 15:04\", or RFC3339)",
				Destination: &cmd.due,
			},
			&cli.StringSliceFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "tag (repeatable)",
				Destination: &cmd.tags,
			},
		},
		Action: cmd.runAdd,
	}
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	content := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if err := validate.TaskContentField("content", content); err != nil {
		return err
	}
	if err := validate.Priority(cmd.priority); err != nil {
		return err
	}
	if err := validate.Category(cmd.category); err != nil {
		return err
	}

	var due *time.Time
	if cmd.due != "" {
		parsed, err := parseDueDate(cmd.due)
		if err != nil {
			return err
		}
		due = &parsed
	}

	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}

	tasks, err := cmd.flags.App.Tasks.Dispatch(ctx, task.Add{
		Content:  content,
		Priority: task.Priority(cmd.priority),
		Category: task.Category(cmd.category),
		DueDate:  due,
		Tags:     cmd.tags,
	})
	if err := reportDispatch(c.Root().ErrWriter, err); err != nil {
		return err
	}

	added := tasks[len(tasks)-1]
	fmt.Fprintf(c.Root().Writer, "added %s\n", shortID(added.ID))
	return nil
}

func (cmd *TaskCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "taskdeck ls [--status <s>] [--category <c>] [--search <term>] [--sort <key>] [--json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "status filter (all, uncompleted, completed, overdue)",
				Value:       string(task.FilterAll),
				Destination: &cmd.lsStatus,
			},
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"c"},
				Usage:       "category filter (all or a category)",
				Value:       task.CategoryAll,
				Destination: &cmd.lsCategory,
			},
			&cli.StringFlag{
				Name:        "search",
				Usage:       "substring match on content or tags",
				Destination: &cmd.lsSearch,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "sort key (createdAt, priority, dueDate, alphabetical)",
				Value:       string(task.SortCreatedAt),
				Destination: &cmd.lsSort,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit JSON instead of styled output",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}

	view := cmd.flags.App.Tasks.View(task.Query{
		Status:   task.StatusFilter(cmd.lsStatus),
		Category: cmd.lsCategory,
		Search:   cmd.lsSearch,
		SortBy:   task.SortKey(cmd.lsSort),
	})

	if cmd.asJSON {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, view)
	}

	if len(view) == 0 {
		fmt.Fprintln(c.Root().Writer, "no tasks")
		return nil
	}

	theme := cmd.flags.theme(ctx)
	now := time.Now()
	for _, t := range view {
		fmt.Fprintln(c.Root().Writer, renderTaskLine(theme, t, now))
	}
	return nil
}

func (cmd *TaskCmd) doneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a task completed",
		UsageText: "taskdeck done <id>",
		Action:    cmd.setCompleted(true),
	}
}

func (cmd *TaskCmd) undoneCmd() *cli.Command {
	return &cli.Command{
		Name:      "undone",
		Usage:     "Mark a task not completed",
		UsageText: "taskdeck undone <id>",
		Action:    cmd.setCompleted(false),
	}
}

func (cmd *TaskCmd) setCompleted(completed bool) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.NArg() < 1 {
			return fmt.Errorf("usage: %s", c.UsageText)
		}
		if err := cmd.flags.loadTasks(ctx); err != nil {
			return err
		}

		id, err := cmd.resolveID(c.Args().Get(0))
		if err != nil {
			return err
		}

		_, err = cmd.flags.App.Tasks.Dispatch(ctx, task.Update{
			ID:     id,
			Fields: task.Fields{Completed: &completed},
		})
		if err := reportDispatch(c.Root().ErrWriter, err); err != nil {
			return err
		}

		fmt.Fprintln(c.Root().Writer, shortID(id))
		return nil
	}
}

func (cmd *TaskCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a task's fields",
		UsageText: "taskdeck edit <id> [--content <text>] [--priority <p>] [--category <c>] [--due <date>|--due \"\"] [--tag <t>...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "content",
				Usage:       "replacement content",
				Destination: &cmd.content,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"c"},
				Usage:       "category",
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date; pass an empty string to clear",
				Destination: &cmd.due,
			},
			&cli.StringSliceFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "replacement tags (repeatable)",
				Destination: &cmd.tags,
			},
		},
		Action: cmd.runEdit,
	}
}

func (cmd *TaskCmd) runEdit(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: %s", c.UsageText)
	}

	fields := task.Fields{}
	if c.IsSet("content") {
		if err := validate.TaskContentField("content", cmd.content); err != nil {
			return err
		}
		content := cmd.content
		fields.Content = &content
	}
	if c.IsSet("priority") {
		if err := validate.Priority(cmd.priority); err != nil {
			return err
		}
		p := task.Priority(cmd.priority)
		fields.Priority = &p
	}
	if c.IsSet("category") {
		if err := validate.Category(cmd.category); err != nil {
			return err
		}
		cat := task.Category(cmd.category)
		fields.Category = &cat
	}
	if c.IsSet("due") {
		var due *time.Time
		if cmd.due != "" {
			parsed, err := parseDueDate(cmd.due)
			if err != nil {
				return err
			}
			due = &parsed
		}
		fields.DueDate = &due
	}
	if c.IsSet("tag") {
		tags := cmd.tags
		fields.Tags = &tags
	}

	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}

	id, err := cmd.resolveID(c.Args().Get(0))
	if err != nil {
		return err
	}

	_, err = cmd.flags.App.Tasks.Dispatch(ctx, task.Update{ID: id, Fields: fields})
	if err := reportDispatch(c.Root().ErrWriter, err); err != nil {
		return err
	}

	fmt.Fprintln(c.Root().Writer, shortID(id))
	return nil
}

func (cmd *TaskCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete tasks",
		UsageText: "taskdeck rm <id> [<id>...]",
		Action:    cmd.runRemove,
	}
}

func (cmd *TaskCmd) runRemove(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: %s", c.UsageText)
	}
	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}

	ids := make([]string, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		id, err := cmd.resolveID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	var err error
	if len(ids) == 1 {
		_, err = cmd.flags.App.Tasks.Dispatch(ctx, task.Delete{ID: ids[0]})
	} else {
		_, err = cmd.flags.App.Tasks.Dispatch(ctx, task.BatchDelete{IDs: ids})
	}
	if err := reportDispatch(c.Root().ErrWriter, err); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "removed %d\n", len(ids))
	return nil
}

func (cmd *TaskCmd) toggleAllCmd() *cli.Command {
	return &cli.Command{
		Name:      "toggle-all",
		Usage:     "Mark every task completed (or not, with --uncheck)",
		UsageText: "taskdeck toggle-all [--uncheck]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "uncheck",
				Usage:       "mark every task not completed",
				Destination: &cmd.uncheck,
			},
		},
		Action: cmd.runToggleAll,
	}
}

func (cmd *TaskCmd) runToggleAll(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}

	tasks, err := cmd.flags.App.Tasks.Dispatch(ctx, task.ToggleAll{Completed: !cmd.uncheck})
	if err := reportDispatch(c.Root().ErrWriter, err); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "toggled %d\n", len(tasks))
	return nil
}

func (cmd *TaskCmd) statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show task statistics",
		UsageText: "taskdeck stats [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit JSON instead of styled output",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.runStats,
	}
}

func (cmd *TaskCmd) runStats(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.loadTasks(ctx); err != nil {
		return err
	}

	stats := cmd.flags.App.Tasks.Stats()
	if cmd.asJSON {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, stats)
	}

	theme := cmd.flags.theme(ctx)
	fmt.Fprintln(c.Root().Writer, renderStats(theme, stats))
	return nil
}

// resolveID resolves a full ID or unique prefix against the loaded list.
func (cmd *TaskCmd) resolveID(arg string) (string, error) {
	if _, ok := cmd.flags.App.Tasks.Find(arg); ok {
		return arg, nil
	}

	var match string
	for _, t := range cmd.flags.App.Tasks.Tasks() {
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task with id %q", arg)
	}
	return match, nil
}

func parseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due date %q", value)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
