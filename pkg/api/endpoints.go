package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/tanzil-search/pkg/kit"
	"github.com/hazyhaar/tanzil-search/pkg/quran"
)

// errNoVerse marks a position outside the chapter's verse range.
var errNoVerse = errors.New("no such verse")

// Shared request/response types used by both HTTP and MCP transports.

type resolveReq struct {
	Chapter int
	Query   string
	Recite  bool
}

type verseReq struct {
	Chapter  int
	Position int
}

type resolveResponse struct {
	Chapter int          `json:"chapter"`
	Query   string       `json:"query"`
	Found   bool         `json:"found"`
	Verse   *quran.Verse `json:"verse,omitempty"`
	Score   float64      `json:"score,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	Script  string       `json:"script"`
	Intent  string       `json:"intent"`
}

type verseResponse struct {
	Chapter int          `json:"chapter"`
	Verse   *quran.Verse `json:"verse"`
}

type chaptersResponse struct {
	Chapters []quran.ChapterInfo `json:"chapters"`
}

func resolveEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*resolveReq)
		resolver, err := svc.Open(ctx, req.Chapter)
		if err != nil {
			return nil, err
		}

		outcome := resolver.Resolve(req.Query, req.Recite)
		resp := resolveResponse{
			Chapter: req.Chapter,
			Query:   req.Query,
			Found:   outcome.Found,
			Script:  outcome.Script.String(),
			Intent:  outcome.Intent.String(),
		}
		if outcome.Found {
			resp.Verse = outcome.Verse
			resp.Score = outcome.Score
		} else {
			resp.Reason = outcome.Reason.String()
		}
		return resp, nil
	}
}

func getVerseEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*verseReq)
		resolver, err := svc.Open(ctx, req.Chapter)
		if err != nil {
			return nil, err
		}
		v := resolver.Chapter().Verse(req.Position)
		if v == nil {
			return nil, fmt.Errorf("%w: chapter %d position %d", errNoVerse, req.Chapter, req.Position)
		}
		return verseResponse{Chapter: req.Chapter, Verse: v}, nil
	}
}

func listChaptersEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		infos, err := svc.Index(ctx)
		if err != nil {
			return nil, err
		}
		return chaptersResponse{Chapters: infos}, nil
	}
}
