package server

import (
	"io"
	"mime/multipart"
	"strconv"

	"netlife/internal/service"
	"netlife/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func readUpload(fh *multipart.FileHeader) (string, []byte, error) {
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, content, nil
}

// Home handles GET / and renders the global feed, newest post first.
func (s *Server) Home(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	posts, err := s.contentService.Feed(c.UserContext(), userID)
	if err != nil {
		return err
	}
	tags, err := s.contentService.Tags(c.UserContext())
	if err != nil {
		return err
	}

	return s.render(c, "home", fiber.Map{
		"posts": posts,
		"tags":  tags,
	})
}

// CreatePostPage handles GET /create/
func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	return s.render(c, "create", fiber.Map{
		"errors": validation.FieldErrors{},
	})
}

// CreatePost handles POST /create/ with a multipart form carrying the main
// image, an optional gallery and a comma-separated tag list.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	in := service.CreatePostInput{
		OwnerID:     userID,
		Description: c.FormValue("description"),
		Tags:        validation.ParseTagList(c.FormValue("tags")),
	}

	if fh, err := c.FormFile("main_image"); err == nil {
		name, content, err := readUpload(fh)
		if err != nil {
			return err
		}
		in.MainImageName = name
		in.MainImage = content
	}

	if mf, err := c.MultipartForm(); err == nil {
		for _, fh := range mf.File["images"] {
			name, content, err := readUpload(fh)
			if err != nil {
				return err
			}
			in.Gallery = append(in.Gallery, service.GalleryFile{Name: name, Content: content})
		}
	}

	_, fieldErrs, err := s.contentService.CreatePost(c.UserContext(), in)
	if err != nil {
		return err
	}
	if fieldErrs.HasErrors() {
		return s.render(c, "create", fiber.Map{
			"errors":      fieldErrs,
			"description": in.Description,
		})
	}

	s.addFlash(c, "Post created successfully")
	return c.Redirect("/", fiber.StatusFound)
}

// PostDetail handles GET /post/:id and renders a post with its gallery.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	post, err := s.contentService.GetPost(c.UserContext(), uint(id), userID)
	if err != nil {
		return err
	}

	return s.render(c, "post", fiber.Map{
		"post":       post,
		"main_image": post.MainImage,
		"images":     post.Images,
		"tags":       post.Tags,
	})
}

// ToggleLike handles POST /liked/:post_id. Only honored for XMLHttpRequest
// calls; anything else bounces back to the feed without touching state.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	if c.Get("X-Requested-With") != "XMLHttpRequest" {
		return c.Redirect("/", fiber.StatusFound)
	}

	userID := c.Locals("userID").(uint)

	postID, err := strconv.ParseUint(c.Params("post_id"), 10, 64)
	if err != nil {
		return fiber.ErrNotFound
	}

	liked, count, err := s.contentService.ToggleLike(c.UserContext(), userID, uint(postID))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"value":        liked,
		"amount_likes": count,
	})
}
