package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"keepnotes/internal/notes"
	"keepnotes/internal/query"
	"keepnotes/internal/types"
)

func newTagsCommand(wiring commandWiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List, add or remove tags",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List tags with their active note counts",
		Args:  cobra.NoArgs,
		RunE: withSession(wiring, false, func(ctx context.Context, s *session, _ []string) error {
			data := s.notes.Snapshot()
			counts := query.CountNotes(data.Notes)
			width := 0
			for _, tag := range data.Tags {
				width = max(width, runewidth.StringWidth(tag))
			}
			for _, tag := range data.Tags {
				marker := " "
				if tag == data.ActiveTag {
					marker = "*"
				}
				fmt.Fprintf(wiring.stdout, "%s %s  %d\n", marker, runewidth.FillRight(tag, width), counts.ByTag[tag])
			}
			return nil
		}),
	}
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
			added, err := s.notes.AddTag(ctx, args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[0])
			if !added {
				fmt.Fprintf(wiring.stdout, "tag %q already exists\n", name)
				return nil
			}
			fmt.Fprintf(wiring.stdout, "added tag %q\n", name)
			return nil
		}),
	}
	remove := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a tag from the list and from every note",
		Args:    cobra.ExactArgs(1),
		RunE: withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
			if err := s.notes.RemoveTag(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(wiring.stdout, "removed tag %q\n", args[0])
			return nil
		}),
	}
	set := &cobra.Command{
		Use:   "set <id> [tag...]",
		Short: "Replace the tags of a note; no tags clears them",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
			note, err := s.notes.SetNoteTags(ctx, args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintf(wiring.stdout, "%s tags: %s\n", note.ID, strings.Join(note.Tags, ", "))
			return nil
		}),
	}
	cmd.AddCommand(list, add, remove, set)
	return cmd
}

func newSortCommand(wiring commandWiring) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <mode>",
		Short: "Set the sort mode: prio-asc|prio-desc|latest|created|edited|none",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
			mode, ok := types.ParseSortMode(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", notes.ErrInvalidSort, args[0])
			}
			if err := s.notes.SetSort(ctx, mode); err != nil {
				return err
			}
			fmt.Fprintf(wiring.stdout, "sort: %s\n", mode.Label())
			return nil
		}),
	}
}

func newViewCommand(wiring commandWiring) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "view <view>",
		Short: "Switch the current view: notes|archive|trash|edit-tags",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
		view, ok := types.ParseView(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", notes.ErrInvalidView, args[0])
		}
		var err error
		if cmd.Flags().Changed("tag") {
			if view != types.ViewNotes {
				return fmt.Errorf("--tag only applies to the notes view")
			}
			err = s.notes.SetActiveTag(ctx, tag)
		} else {
			err = s.notes.SetView(ctx, view)
		}
		if err != nil {
			return err
		}
		data := s.notes.Snapshot()
		fmt.Fprintf(wiring.stdout, "view: %s\n", query.HeaderTitle(data.View, data.ActiveTag))
		return nil
	})
	cmd.Flags().StringVar(&tag, "tag", "", "filter the notes view by tag; empty clears it")
	return cmd
}
