package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"keepnotes/internal/markup"
	"keepnotes/internal/notes"
	"keepnotes/internal/query"
	"keepnotes/internal/types"
)

type listOptions struct {
	view  string
	tag   string
	sort  string
	title string
	json  bool
}

func newListCommand(wiring commandWiring) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the notes of a view",
		Long:  "List runs the stored view, tag filter and sort. Flags override them for this listing only.",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withSession(wiring, false, func(ctx context.Context, s *session, _ []string) error {
		data := s.notes.Snapshot()
		if cmd.Flags().Changed("view") {
			view, ok := types.ParseView(opts.view)
			if !ok {
				return fmt.Errorf("%w: %q", notes.ErrInvalidView, opts.view)
			}
			data.View = view
			if view != types.ViewNotes {
				data.ActiveTag = ""
			}
		}
		if cmd.Flags().Changed("tag") {
			data.View = types.ViewNotes
			data.ActiveTag = opts.tag
		}
		if cmd.Flags().Changed("sort") {
			mode, ok := types.ParseSortMode(opts.sort)
			if !ok {
				return fmt.Errorf("%w: %q", notes.ErrInvalidSort, opts.sort)
			}
			data.Sort = mode
		}
		visible, err := filterTitles(query.Visible(data), opts.title)
		if err != nil {
			return err
		}
		if opts.json {
			encoder := json.NewEncoder(wiring.stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(visible)
		}
		fmt.Fprintf(wiring.stdout, "%s (%d)\n", query.HeaderTitle(data.View, data.ActiveTag), len(visible))
		printNotes(wiring.stdout, visible)
		return nil
	})
	cmd.Flags().StringVar(&opts.view, "view", "", "view: notes|archive|trash")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "only notes carrying this tag")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort: prio-asc|prio-desc|latest|created|edited|none")
	cmd.Flags().StringVar(&opts.title, "title", "", "glob the title must match, e.g. 'Grocer*'")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	return cmd
}

func filterTitles(list []types.Note, pattern string) ([]types.Note, error) {
	if pattern == "" {
		return list, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid title pattern %q", pattern)
	}
	out := make([]types.Note, 0, len(list))
	for _, note := range list {
		ok, err := doublestar.Match(pattern, note.Title)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, note)
		}
	}
	return out, nil
}

type noteFlags struct {
	title    string
	content  string
	tags     []string
	bg       string
	priority string
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "note title")
	cmd.Flags().StringVar(&f.content, "content", "", "note text; newlines become line breaks")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag to attach (repeatable)")
	cmd.Flags().StringVar(&f.bg, "bg", "", "background: red|blue|yellow|none")
	cmd.Flags().StringVar(&f.priority, "priority", "", "priority: low|high")
}

// apply copies the flags the user set onto draft.
func (f *noteFlags) apply(cmd *cobra.Command, draft *types.NoteDraft) {
	if cmd.Flags().Changed("title") {
		draft.Title = f.title
	}
	if cmd.Flags().Changed("content") {
		draft.Content = markup.FromText(f.content)
	}
	if cmd.Flags().Changed("tag") {
		draft.Tags = append([]string{}, f.tags...)
	}
	if cmd.Flags().Changed("bg") {
		draft.Background = types.Background(f.bg)
	}
	if cmd.Flags().Changed("priority") {
		draft.Priority = types.Priority(f.priority)
	}
}

func newAddCommand(wiring commandWiring) *cobra.Command {
	var flags noteFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withSession(wiring, false, func(ctx context.Context, s *session, _ []string) error {
		draft := types.NoteDraft{
			Background: s.cfg.DefaultBackground(),
			Priority:   s.cfg.DefaultPriority(),
		}
		flags.apply(cmd, &draft)
		note, err := s.notes.UpsertNote(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintln(wiring.stdout, note.ID)
		return nil
	})
	flags.register(cmd)
	return cmd
}

func newEditCommand(wiring commandWiring) *cobra.Command {
	var flags noteFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a note",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
		note, ok := s.notes.Note(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", notes.ErrNoteNotFound, args[0])
		}
		draft := types.DraftFromNote(note)
		flags.apply(cmd, &draft)
		updated, err := s.notes.UpsertNote(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintln(wiring.stdout, updated.ID)
		return nil
	})
	flags.register(cmd)
	return cmd
}

func newToggleCommand(wiring commandWiring, name string) *cobra.Command {
	short := "Archive a note, or move it back to notes"
	if name == "trash" {
		short = "Move a note to trash, or restore it"
	}
	cmd := &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
		toggle, state := s.notes.ToggleArchived, func(n types.Note) bool { return n.Archived }
		if name == "trash" {
			toggle, state = s.notes.ToggleTrashed, func(n types.Note) bool { return n.Trashed }
		}
		note, err := toggle(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(wiring.stdout, "%s %s=%t\n", note.ID, name, state(note))
		return nil
	})
	return cmd
}
