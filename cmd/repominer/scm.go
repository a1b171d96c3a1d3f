package main

import (
	gocontext "context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/scm"
)

type RefsCmd struct {
	Repo string `arg:"" help:"Path of the repository." type:"existingdir"`
}

func (c *RefsCmd) Run(ctx *context) error {
	session, err := scm.Open(c.Repo)
	if err != nil {
		return err
	}
	defer session.Close()

	refs, err := session.ListReferences()
	if err != nil {
		return err
	}

	for _, r := range refs {
		fmt.Printf("%-6v %v\n", r.Type, r.Path)
	}

	return nil
}

type CommitsCmd struct {
	Repo   string `arg:"" help:"Path of the repository." type:"existingdir"`
	Ref    string `help:"Only list commits reachable from this branch or tag."`
	Tag    bool   `help:"The reference is a tag."`
	Binary int64  `default:"2048" help:"Bytes searched for a NUL byte to tell binary files apart."`
}

func (c *CommitsCmd) Run(ctx *context) error {
	opts := scm.Options{}
	opts.Churn.BinaryThreshold = c.Binary

	session, err := scm.Open(c.Repo, opts)
	if err != nil {
		return err
	}
	defer session.Close()

	commits, err := c.list(session)
	if err != nil {
		return err
	}

	for _, commit := range commits {
		fmt.Printf("%v %v %v <%v> +%v -%v %v\n",
			commit.ShortID(), humanize.Time(commit.CommitDate()), commit.Author.Name, commit.Author.Email,
			humanize.Comma(int64(commit.LinesAdded())), humanize.Comma(int64(commit.LinesRemoved())),
			firstLine(commit.Message))

		for _, ch := range commit.Changes {
			switch {
			case ch.Binary:
				fmt.Printf("    %-6v %v (binary)\n", ch.Type, ch.Path)
			case ch.OldPath != "":
				fmt.Printf("    %-6v %v -> %v +%v -%v\n", ch.Type, ch.OldPath, ch.Path, ch.LinesAdded, ch.LinesRemoved)
			default:
				fmt.Printf("    %-6v %v +%v -%v\n", ch.Type, ch.Path, ch.LinesAdded, ch.LinesRemoved)
			}
		}
	}

	return nil
}

func (c *CommitsCmd) list(session *scm.Session) ([]*model.Commit, error) {
	bg := gocontext.Background()

	if c.Ref == "" {
		return session.ListCommits(bg)
	}

	ref := &model.Reference{Name: c.Ref, Type: model.BranchReference}
	if c.Tag {
		ref.Type = model.TagReference
	}
	if strings.HasPrefix(c.Ref, "refs/") {
		ref.Path = c.Ref
		ref.Name = model.ShortReferenceName(c.Ref)
	}

	ids, err := session.ListCommitIDs(ref)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Commit, 0, len(ids))
	for _, id := range ids {
		commit, err := session.Commit(bg, id)
		if err != nil {
			return nil, err
		}
		result = append(result, commit)
	}

	return result, nil
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return line
}

type CheckoutCmd struct {
	Repo   string `arg:"" help:"Path of the repository." type:"existingdir"`
	Commit string `arg:"" help:"Commit to check out."`
}

func (c *CheckoutCmd) Run(ctx *context) error {
	session, err := scm.Open(c.Repo)
	if err != nil {
		return err
	}
	defer session.Close()

	err = session.Checkout(c.Commit)
	if err != nil {
		return err
	}

	ctx.console.Printf("Checked out %v\n", c.Commit)
	return nil
}
