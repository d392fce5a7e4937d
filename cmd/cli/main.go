package main

import (
	"fmt"
	"os"

	"github.com/nvtrung/forum-api/cmd/cli/auth"
	"github.com/nvtrung/forum-api/cmd/cli/comments"
	"github.com/nvtrung/forum-api/cmd/cli/posts"
	"github.com/nvtrung/forum-api/cmd/cli/root"
)

func main() {
	auth.InitAuth()
	posts.InitPosts()
	comments.InitComments()

	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
