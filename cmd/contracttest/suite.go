package main

import (
	"net/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedCount = 10

func fakePost() PostInput {
	return PostInput{
		Title:   gofakeit.Sentence(6),
		Content: gofakeit.Paragraph(2, 4, 10, "\n"),
		Author: &Author{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		},
	}
}

// seed creates seedCount posts and removes them again when c finishes.
func seed(c *Context, client *BlogClient) []Post {
	posts := make([]Post, 0, seedCount)
	for i := 0; i < seedCount; i++ {
		resp, err := client.Create(fakePost())
		require.NoError(c, err)
		require.Equal(c, http.StatusCreated, resp.Status, string(resp.Body))

		var p Post
		require.NoError(c, resp.Decode(&p))
		posts = append(posts, p)
	}

	c.Cleanup(func() {
		for _, p := range posts {
			_, _ = client.Delete(p.ID)
		}
	})
	return posts
}

func RunSuite(c *Context, client *BlogClient) {
	c.Run("GET /posts", func(c *Context) {
		c.Run("returns all written posts", func(c *Context) {
			seed(c, client)

			resp, err := client.List()
			require.NoError(c, err)
			require.Equal(c, http.StatusOK, resp.Status)

			var posts []Post
			require.NoError(c, resp.Decode(&posts))
			assert.GreaterOrEqual(c, len(posts), seedCount)
		})

		c.Run("returns posts with right fields", func(c *Context) {
			seed(c, client)

			resp, err := client.List()
			require.NoError(c, err)
			require.Equal(c, http.StatusOK, resp.Status)

			var raw []map[string]any
			require.NoError(c, resp.Decode(&raw))
			require.NotEmpty(c, raw)
			for _, p := range raw {
				assert.Contains(c, p, "title")
				assert.Contains(c, p, "content")
				assert.Contains(c, p, "author")
			}

			var posts []Post
			require.NoError(c, resp.Decode(&posts))
			first := posts[0]

			got, err := client.Get(first.ID)
			require.NoError(c, err)
			require.Equal(c, http.StatusOK, got.Status)
			var stored Post
			require.NoError(c, got.Decode(&stored))
			assert.Equal(c, first.Title, stored.Title)
			assert.Equal(c, first.Content, stored.Content)
			assert.Equal(c, first.Author, stored.Author)
		})
	})

	c.Run("POST /posts", func(c *Context) {
		c.Run("adds a new post", func(c *Context) {
			newPost := fakePost()

			resp, err := client.Create(newPost)
			require.NoError(c, err)
			require.Equal(c, http.StatusCreated, resp.Status, string(resp.Body))

			var created Post
			require.NoError(c, resp.Decode(&created))
			require.NotEmpty(c, created.ID)
			c.Cleanup(func() { _, _ = client.Delete(created.ID) })

			assert.Equal(c, newPost.Title, created.Title)
			assert.Equal(c, newPost.Content, created.Content)
			assert.Equal(c, newPost.Author.FirstName+" "+newPost.Author.LastName, created.Author)

			got, err := client.Get(created.ID)
			require.NoError(c, err)
			require.Equal(c, http.StatusOK, got.Status)
			var stored Post
			require.NoError(c, got.Decode(&stored))
			assert.Equal(c, newPost.Title, stored.Title)
			assert.Equal(c, newPost.Content, stored.Content)
			assert.Equal(c, created.Author, stored.Author)
		})

		c.Run("rejects a post without title", func(c *Context) {
			in := fakePost()
			in.Title = ""

			resp, err := client.Create(in)
			require.NoError(c, err)
			assert.Equal(c, http.StatusBadRequest, resp.Status)
		})
	})

	c.Run("PUT /posts/:id", func(c *Context) {
		c.Run("updates fields", func(c *Context) {
			target := seed(c, client)[0]
			update := PostInput{
				ID:      target.ID,
				Title:   "updated Data",
				Content: "this is updated content",
				Author: &Author{
					FirstName: "updatedFName",
					LastName:  "updatedLName",
				},
			}

			resp, err := client.Update(target.ID, update)
			require.NoError(c, err)
			require.Equal(c, http.StatusNoContent, resp.Status, string(resp.Body))
			assert.Empty(c, resp.Body)

			got, err := client.Get(target.ID)
			require.NoError(c, err)
			require.Equal(c, http.StatusOK, got.Status)
			var stored Post
			require.NoError(c, got.Decode(&stored))
			assert.Equal(c, "updated Data", stored.Title)
			assert.Equal(c, "this is updated content", stored.Content)
			assert.Equal(c, "updatedFName updatedLName", stored.Author)
		})

		c.Run("rejects mismatched id", func(c *Context) {
			target := seed(c, client)[0]

			resp, err := client.Update(target.ID, PostInput{ID: "something-else", Title: "x"})
			require.NoError(c, err)
			assert.Equal(c, http.StatusBadRequest, resp.Status)
		})
	})

	c.Run("DELETE /posts/:id", func(c *Context) {
		c.Run("deletes a post by id", func(c *Context) {
			target := seed(c, client)[0]

			resp, err := client.Delete(target.ID)
			require.NoError(c, err)
			require.Equal(c, http.StatusNoContent, resp.Status)

			got, err := client.Get(target.ID)
			require.NoError(c, err)
			assert.Equal(c, http.StatusNotFound, got.Status)
		})
	})
}
