package planet

import (
	"fmt"
	"hash/fnv"
	"math"
	"net/url"
	"strings"
	"time"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/errors"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusDestroyed Status = "destroyed"
)

type Color string

const (
	ColorNone   Color = ""
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
)

var colorValues = map[Color]uint32{
	ColorBlue:   0x0080ff,
	ColorGreen:  0x00ff80,
	ColorRed:    0xff0000,
	ColorYellow: 0xffcc00,
	ColorPurple: 0xcc00ff,
	ColorNone:   0xffffff,
}

// Hex returns the marker color as #rrggbb; unknown colors render white.
func (c Color) Hex() string {
	value, ok := colorValues[c]
	if !ok {
		value = colorValues[ColorNone]
	}
	return fmt.Sprintf("#%06x", value)
}

const MaxNameLength = 255

// Planet is a user-placed marker in the galaxy.
type Planet struct {
	Name        string       `json:"name"`
	Faction     string       `json:"faction"`
	PlanetType  string       `json:"planet_type"`
	Description string       `json:"description"`
	Population  int64        `json:"population"`
	Status      Status       `json:"status"`
	Image       string       `json:"image"`
	VRChatURL   string       `json:"vrchat_url"`
	Color       Color        `json:"color"`
	Segmentum   string       `json:"segmentum"`
	Position    procgen.Vec3 `json:"position"`
	Editing     bool         `json:"editing"`
	StarClass   int          `json:"star_class"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ColorHex is the sprite color for the planet marker.
func (p Planet) ColorHex() string {
	return p.Color.Hex()
}

// normalize trims free-text fields and fills the default status.
func (p *Planet) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Faction = strings.TrimSpace(p.Faction)
	p.PlanetType = strings.TrimSpace(p.PlanetType)
	p.Segmentum = strings.TrimSpace(p.Segmentum)
	p.VRChatURL = strings.TrimSpace(p.VRChatURL)
	if p.Status == "" {
		p.Status = StatusActive
	}
}

func (p Planet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Validation("name is required")
	}
	if len(p.Name) > MaxNameLength {
		return errors.Validationf("name must be at most %d bytes", MaxNameLength)
	}
	if strings.Contains(p.Name, "/") {
		return errors.Validation("name must not contain '/'")
	}
	if p.Status != StatusActive && p.Status != StatusDestroyed {
		return errors.Validationf("unknown status %q", p.Status)
	}
	if _, ok := colorValues[p.Color]; !ok {
		return errors.Validationf("unknown color %q", p.Color)
	}
	if p.Population < 0 {
		return errors.Validation("population must not be negative")
	}
	if !p.Position.IsFinite() {
		return errors.Validation("position must be finite")
	}
	if p.VRChatURL != "" {
		u, err := url.Parse(p.VRChatURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.Validationf("invalid vrchat_url %q", p.VRChatURL)
		}
	}
	return nil
}

// StarClassFor gives every planet name a stable star class.
func StarClassFor(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return galaxy.PickStarClass(procgen.NewRand(h.Sum32()).Source())
}

// matches reports whether p is the planet described by other when the name
// cannot be used: same faction and type, position within 0.1 on each axis.
func (p Planet) matches(other Planet) bool {
	const tolerance = 0.1
	return p.Faction == other.Faction &&
		p.PlanetType == other.PlanetType &&
		math.Abs(p.Position.X-other.Position.X) < tolerance &&
		math.Abs(p.Position.Y-other.Position.Y) < tolerance &&
		math.Abs(p.Position.Z-other.Position.Z) < tolerance
}

const ExportVersion = "1.0.0"

// ExportDocument is the portable form of the planet set.
type ExportDocument struct {
	Planets    []Planet  `json:"planets"`
	ExportDate time.Time `json:"export_date"`
	Version    string    `json:"version"`
}
