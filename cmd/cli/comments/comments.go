package comments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvtrung/forum-api/cmd/cli/config"
	"github.com/nvtrung/forum-api/cmd/cli/output"
	"github.com/nvtrung/forum-api/cmd/cli/root"
)

type comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// InitComments registers the comments listing command and the comment command.
func InitComments() {
	root.GetRoot().AddCommand(listCmd(), addCmd())
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <post_id>",
		Short: "List the comments on a post, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(config.APIURL() + "/api/comments/" + args[0])
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var comments []comment
			if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(comments))
			for _, c := range comments {
				rows = append(rows, []interface{}{c.ID, c.Username, c.Content, c.CreatedAt.Format(time.RFC3339)})
			}
			output.RenderTable([]string{"ID", "Author", "Comment", "Created"}, rows)
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "comment <post_id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if content == "" {
				return fmt.Errorf("content is required")
			}

			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("not logged in (run: forum login)")
			}

			data, err := json.Marshal(map[string]string{"content": content})
			if err != nil {
				return err
			}

			req, err := http.NewRequest("POST", config.APIURL()+"/api/add_comment/"+args[0], bytes.NewBuffer(data))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var out struct {
				CommentID int `json:"comment_id"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				return err
			}

			fmt.Printf("Comment added with id %d.\n", out.CommentID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Comment text")

	return cmd
}
