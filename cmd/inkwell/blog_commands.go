package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/api"
)

var blogCommand = &cli.Command{
	Name:  "blog",
	Usage: "Manage blogs",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Retrieve one page of blogs, newest first",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:  flagPage,
					Usage: "Retrieve the specified page",
					Value: 1,
				},
				&cli.Int64Flag{
					Name:  flagLimit,
					Usage: "Retrieve at most the specified number of blogs",
				},
				&cli.StringFlag{
					Name:  flagSearch,
					Usage: "Restrict results to blogs matching the specified query",
				},
				cliFlagOutput,
			},
			Action: blogList,
		},
		{
			Name:  "get",
			Usage: "Retrieve a blog",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified blog (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: blogGet,
		},
		{
			Name:  "create",
			Usage: "Create a new blog",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagTitle,
					Aliases:  []string{"t"},
					Usage:    "Specify the blog's title (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:    flagContent,
					Aliases: []string{"c"},
					Usage:   "Specify the blog's content",
				},
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage:   "Read the blog's content from the specified file",
				},
				&cli.StringFlag{
					Name:  flagImage,
					Usage: "Specify the URL of the blog's cover image",
				},
				&cli.StringSliceFlag{
					Name:  flagTag,
					Usage: "Label the blog with the specified tag; may be repeated",
				},
			},
			Action: blogCreate,
		},
		{
			Name:  "update",
			Usage: "Update one of your blogs",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Update the specified blog (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:     flagTitle,
					Aliases:  []string{"t"},
					Usage:    "Specify the blog's new title (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:    flagContent,
					Aliases: []string{"c"},
					Usage:   "Specify the blog's new content",
				},
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage:   "Read the blog's new content from the specified file",
				},
				&cli.StringFlag{
					Name:  flagImage,
					Usage: "Specify the URL of the blog's new cover image",
				},
				&cli.StringSliceFlag{
					Name:  flagTag,
					Usage: "Label the blog with the specified tag; may be repeated",
				},
			},
			Action: blogUpdate,
		},
		{
			Name:  "delete",
			Usage: "Delete one of your blogs",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Delete the specified blog (required)",
					Required: true,
				},
				&cli.BoolFlag{
					Name:    flagYes,
					Aliases: []string{"y"},
					Usage:   "Non-interactively confirm deletion",
				},
			},
			Action: blogDelete,
		},
		{
			Name:  "like",
			Usage: "Like or unlike a blog",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Like or unlike the specified blog (required)",
					Required: true,
				},
			},
			Action: blogLike,
		},
		{
			Name:  "comment",
			Usage: "Comment on a blog",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Comment on the specified blog (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:     flagContent,
					Aliases:  []string{"c"},
					Usage:    "Specify the comment's content (required)",
					Required: true,
				},
			},
			Action: blogComment,
		},
	},
}

func blogList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting inkwell client")
	}

	blogList, err := client.Blogs().List(
		c.Context,
		api.BlogListOptions{
			Page:   c.Int64(flagPage),
			Limit:  c.Int64(flagLimit),
			Search: c.String(flagSearch),
		},
	)
	if err != nil {
		return err
	}

	if len(blogList.Blogs) == 0 {
		fmt.Println("No blogs found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "AUTHOR", "LIKES", "COMMENTS", "CREATED")
		for _, blog := range blogList.Blogs {
			table.AddRow(
				blog.ID,
				blog.Title,
				blog.Author.Username,
				blog.LikesCount(),
				len(blog.Comments),
				blog.Created,
			)
		}
		fmt.Println(table)
		fmt.Printf(
			"\nPage %d of %d (%d blogs total)\n",
			blogList.CurrentPage,
			blogList.TotalPages,
			blogList.Total,
		)

	case "yaml":
		yamlBytes, err := yaml.Marshal(blogList)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list blogs operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(blogList, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list blogs operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func blogGet(c *cli.Context) error {
	id := c.String(flagID)
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting inkwell client")
	}

	blog, err := client.Blogs().Get(c.Context, id)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "AUTHOR", "LIKES", "COMMENTS", "CREATED")
		table.AddRow(
			blog.ID,
			blog.Title,
			blog.Author.Username,
			blog.LikesCount(),
			len(blog.Comments),
			blog.Created,
		)
		fmt.Println(table)
		fmt.Printf("\n%s\n", blog.Content)

	case "yaml":
		yamlBytes, err := yaml.Marshal(blog)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get blog operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(blog, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get blog operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func blogUpsertFromFlags(c *cli.Context) (inkwell.BlogUpsert, error) {
	content := c.String(flagContent)
	contentFile := c.String(flagFile)
	if content == "" && contentFile == "" {
		return inkwell.BlogUpsert{}, errors.Errorf(
			"either --%s or --%s must be specified",
			flagContent,
			flagFile,
		)
	}
	if contentFile != "" {
		contentBytes, err := ioutil.ReadFile(contentFile)
		if err != nil {
			return inkwell.BlogUpsert{}, errors.Wrapf(
				err,
				"error reading content file %s",
				contentFile,
			)
		}
		content = string(contentBytes)
	}
	return inkwell.BlogUpsert{
		Title:   c.String(flagTitle),
		Content: content,
		Image:   c.String(flagImage),
		Tags:    c.StringSlice(flagTag),
	}, nil
}

func blogCreate(c *cli.Context) error {
	upsert, err := blogUpsertFromFlags(c)
	if err != nil {
		return err
	}

	_, client, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}

	blog, err := client.Blogs().Create(c.Context, upsert)
	if err != nil {
		return err
	}

	fmt.Printf("Created blog %q with ID %s.\n", blog.Title, blog.ID)
	return nil
}

func blogUpdate(c *cli.Context) error {
	id := c.String(flagID)

	upsert, err := blogUpsertFromFlags(c)
	if err != nil {
		return err
	}

	_, client, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}

	blog, err := client.Blogs().Update(c.Context, id, upsert)
	if err != nil {
		return err
	}

	fmt.Printf("Updated blog %q.\n", blog.Title)
	return nil
}

func blogDelete(c *cli.Context) error {
	id := c.String(flagID)

	if !c.Bool(flagYes) {
		var confirmed bool
		if err := survey.AskOne(
			&survey.Confirm{
				Message: fmt.Sprintf("Delete blog %s?", id),
			},
			&confirmed,
		); err != nil {
			return errors.Wrap(err, "error confirming deletion")
		}
		if !confirmed {
			return nil
		}
	}

	_, client, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}

	if err := client.Blogs().Delete(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("Deleted blog %s.\n", id)
	return nil
}

func blogLike(c *cli.Context) error {
	id := c.String(flagID)

	_, client, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}

	likeResult, err := client.Blogs().ToggleLike(c.Context, id)
	if err != nil {
		return err
	}

	if likeResult.Liked {
		fmt.Printf(
			"You liked blog %s. It now has %d likes.\n",
			id,
			likeResult.LikesCount,
		)
		return nil
	}
	fmt.Printf(
		"You unliked blog %s. It now has %d likes.\n",
		id,
		likeResult.LikesCount,
	)
	return nil
}

func blogComment(c *cli.Context) error {
	id := c.String(flagID)

	_, client, err := getAuthenticatedSession(c)
	if err != nil {
		return err
	}

	comment, err := client.Blogs().AddComment(
		c.Context,
		id,
		inkwell.CommentCreate{
			Content: c.String(flagContent),
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf("Added comment %s to blog %s.\n", comment.ID, id)
	return nil
}
