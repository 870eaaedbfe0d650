package main

import "github.com/urfave/cli/v2"

const (
	flagAvatar   = "avatar"
	flagBio      = "bio"
	flagContent  = "content"
	flagEmail    = "email"
	flagFile     = "file"
	flagFullName = "full-name"
	flagID       = "id"
	flagImage    = "image"
	flagInsecure = "insecure"
	flagLimit    = "limit"
	flagOutput   = "output"
	flagPage     = "page"
	flagPassword = "password"
	flagSearch   = "search"
	flagServer   = "server"
	flagTag      = "tag"
	flagTitle    = "title"
	flagUsername = "username"
	flagYes      = "yes"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}
)
