package utils

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	PublicPerPage = 12
	AdminPerPage  = 20
)

type PageParams struct {
	Page    int
	PerPage int
}

func ParsePageParams(c *fiber.Ctx, defaultPerPage int) PageParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.Query("per_page"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

func (p PageParams) Limit() int  { return p.PerPage }
func (p PageParams) Offset() int { return (p.Page - 1) * p.PerPage }

type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Page is the pagination envelope shared by every listing endpoint.
type Page struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	From        int         `json:"from"`
	To          int         `json:"to"`
	Links       []PageLink  `json:"links"`
}

// NewPage assembles the envelope around one page of data. count is the
// number of items in data, total the unpaginated row count.
func NewPage(data interface{}, count int, total int64, params PageParams, path string) Page {
	lastPage := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	from, to := 0, 0
	if count > 0 {
		from = params.Offset() + 1
		to = params.Offset() + count
	}
	return Page{
		Data:        data,
		CurrentPage: params.Page,
		LastPage:    lastPage,
		PerPage:     params.PerPage,
		Total:       total,
		From:        from,
		To:          to,
		Links:       pageLinks(path, params.Page, lastPage),
	}
}

func pageLinks(path string, current, last int) []PageLink {
	pageURL := func(n int) *string {
		u := fmt.Sprintf("%s?page=%d", path, n)
		return &u
	}

	links := make([]PageLink, 0, last+2)

	prev := PageLink{Label: "&laquo; Previous"}
	if current > 1 {
		prev.URL = pageURL(current - 1)
	}
	links = append(links, prev)

	for n := 1; n <= last; n++ {
		links = append(links, PageLink{
			URL:    pageURL(n),
			Label:  strconv.Itoa(n),
			Active: n == current,
		})
	}

	next := PageLink{Label: "Next &raquo;"}
	if current < last {
		next.URL = pageURL(current + 1)
	}
	links = append(links, next)
	return links
}

// PaginateQuery counts q, then fetches one page into dest. The query must
// already carry its filters and ordering.
func PaginateQuery(q *gorm.DB, dest interface{}, params PageParams) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	err := q.Limit(params.Limit()).Offset(params.Offset()).Find(dest).Error
	return total, err
}
