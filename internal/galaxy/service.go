package galaxy

import (
	"log/slog"

	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/errors"
)

const (
	DefaultPageLimit = 1000
	MaxPageLimit     = 10000
)

type Page struct {
	Offset int
	Limit  int
	// Camera, when set, replaces the stored scale and opacity with values
	// computed for this viewpoint.
	Camera *procgen.Vec3
}

func (p Page) validate() (Page, error) {
	if p.Offset < 0 {
		return p, errors.Validationf("offset must be >= 0, got %d", p.Offset)
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit < 0 || p.Limit > MaxPageLimit {
		return p, errors.Validationf("limit must be between 1 and %d, got %d", MaxPageLimit, p.Limit)
	}
	if p.Camera != nil && !p.Camera.IsFinite() {
		return p, errors.Validation("camera position must be finite")
	}
	return p, nil
}

type StarView struct {
	Position procgen.Vec3 `json:"position"`
	Class    int          `json:"class"`
	Color    string       `json:"color"`
	Size     float64      `json:"size"`
}

type HazeView struct {
	Position procgen.Vec3 `json:"position"`
	Size     float64      `json:"size"`
	Opacity  float64      `json:"opacity"`
}

type PageResult[T any] struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Items  []T `json:"items"`
}

// Service serves read-only views of one generated galaxy. It never mutates
// the galaxy, so it is safe for concurrent use.
type Service struct {
	galaxy *Galaxy
	logger *slog.Logger
}

func NewService(g *Galaxy, logger *slog.Logger) *Service {
	logger.Debug("Initializing galaxy service",
		"stars", len(g.Stars),
		"haze", len(g.Haze))

	return &Service{
		galaxy: g,
		logger: logger,
	}
}

func (s *Service) Summary() Summary {
	return s.galaxy.Summary()
}

func (s *Service) Stars(page Page) (PageResult[StarView], error) {
	page, err := page.validate()
	if err != nil {
		return PageResult[StarView]{}, err
	}

	start, end := window(len(s.galaxy.Stars), page)
	items := make([]StarView, 0, end-start)
	for _, star := range s.galaxy.Stars[start:end] {
		size := star.Scale
		if page.Camera != nil {
			size = StarSizeAt(star, *page.Camera)
		}
		items = append(items, StarView{
			Position: star.Position,
			Class:    star.Class,
			Color:    ClassOf(star.Class).ColorHex(),
			Size:     size,
		})
	}

	s.logger.Debug("Serving star page", "offset", page.Offset, "limit", page.Limit, "count", len(items))

	return PageResult[StarView]{
		Total:  len(s.galaxy.Stars),
		Offset: page.Offset,
		Limit:  page.Limit,
		Items:  items,
	}, nil
}

func (s *Service) Haze(page Page) (PageResult[HazeView], error) {
	page, err := page.validate()
	if err != nil {
		return PageResult[HazeView]{}, err
	}

	start, end := window(len(s.galaxy.Haze), page)
	items := make([]HazeView, 0, end-start)
	for _, haze := range s.galaxy.Haze[start:end] {
		opacity := haze.Opacity
		if page.Camera != nil {
			opacity = HazeOpacityAt(haze, *page.Camera)
		}
		items = append(items, HazeView{
			Position: haze.Position,
			Size:     haze.Size,
			Opacity:  opacity,
		})
	}

	s.logger.Debug("Serving haze page", "offset", page.Offset, "limit", page.Limit, "count", len(items))

	return PageResult[HazeView]{
		Total:  len(s.galaxy.Haze),
		Offset: page.Offset,
		Limit:  page.Limit,
		Items:  items,
	}, nil
}

func window(total int, page Page) (int, int) {
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	return start, end
}
