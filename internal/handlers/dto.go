package handlers

import (
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/officegen/internal/repository"
	"github.com/vancomm/officegen/internal/wfc"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decode[T any](src url.Values) (T, error) {
	var dto T
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GenerateLayoutDTO struct {
	Size int     `schema:"size,required"`
	Seed *uint64 `schema:"seed"`
}

type ListLayoutsDTO struct {
	Username *string `schema:"username"`
	Size     *int    `schema:"size"`
}

type CredentialsDTO struct {
	Username string `schema:"username,required"`
	Password string `schema:"password,required"`
}

// LayoutDTO carries seeds as decimal strings since they do not fit a
// JavaScript number.
type LayoutDTO struct {
	LayoutID  string       `json:"layout_id"`
	PlayerID  *int64       `json:"player_id,omitempty"`
	Size      int          `json:"size"`
	Seed      string       `json:"seed"`
	Attempts  int          `json:"attempts"`
	Tiles     [][]wfc.Tile `json:"tiles"`
	CreatedAt int64        `json:"created_at"`
}

func NewLayoutDTO(l *repository.Layout) *LayoutDTO {
	return &LayoutDTO{
		LayoutID:  strconv.FormatInt(l.LayoutID, 10),
		PlayerID:  l.PlayerID,
		Size:      int(l.Size),
		Seed:      strconv.FormatUint(l.GeneratorSeed(), 10),
		Attempts:  int(l.Attempts),
		Tiles:     l.Tiles.Rows(),
		CreatedAt: l.CreatedAt.Time.UnixMilli(),
	}
}

type LayoutSummaryDTO struct {
	LayoutID  string  `json:"layout_id"`
	Username  *string `json:"username"`
	Size      int     `json:"size"`
	Seed      string  `json:"seed"`
	Attempts  int     `json:"attempts"`
	CreatedAt int64   `json:"created_at"`
}

func NewLayoutSummaryDTO(s repository.LayoutSummary) LayoutSummaryDTO {
	return LayoutSummaryDTO{
		LayoutID:  strconv.FormatInt(s.LayoutID, 10),
		Username:  s.Username,
		Size:      int(s.Size),
		Seed:      strconv.FormatUint(uint64(s.Seed), 10),
		Attempts:  int(s.Attempts),
		CreatedAt: s.CreatedAt.Time.UnixMilli(),
	}
}

// StreamMessage is one websocket frame of a solve stream.
type StreamMessage struct {
	Type    string     `json:"type"`
	Attempt int        `json:"attempt,omitempty"`
	Step    int        `json:"step,omitempty"`
	Row     int        `json:"row"`
	Col     int        `json:"col"`
	Tiles   []wfc.Tile `json:"tiles,omitempty"`
	Layout  *LayoutDTO `json:"layout,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type PlayerInfo struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}
