package posts

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

type post struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// InitPosts registers the posts listing command and the post create/delete commands.
func InitPosts() {
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Create or delete posts",
	}
	postCmd.AddCommand(createCmd(), deleteCmd())

	root.GetRoot().AddCommand(listCmd(), postCmd)
}

func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(config.APIURL() + "/api/posts")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var posts []post
			if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(posts)
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{p.ID, p.Username, p.Title, p.CreatedAt.Format(time.RFC3339)})
			}
			output.RenderTable([]string{"ID", "Author", "Title", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")

	return cmd
}

func createCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || content == "" {
				return fmt.Errorf("title and content are required")
			}

			var out struct {
				PostID int `json:"post_id"`
			}
			payload := map[string]string{"title": title, "content": content}
			if err := callAuthedEndpoint("POST", "/api/create_post", payload, &out); err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}

			fmt.Printf("Post created with id %d.\n", out.PostID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post body")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post_id>",
		Short: "Delete one of your own posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := callAuthedEndpoint("DELETE", "/api/delete_post/"+args[0], nil, nil); err != nil {
				return fmt.Errorf("failed to delete post: %w", err)
			}

			fmt.Println("Post deleted.")
			return nil
		},
	}
}

func callAuthedEndpoint(method, path string, payload interface{}, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in (run: forum login)")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
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

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return err
		}
	}

	return nil
}
