package pagination

// WindowSize is the maximum number of page entries shown to a client at once.
const WindowSize = 5

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Page describes one slice of a paginated collection.
type Page struct {
	Current    int   `json:"current"`
	PageSize   int   `json:"page_size"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Window     []int `json:"window"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// NormalizePage clamps the requested page into [1, totalPages].
func NormalizePage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// PageCount returns the number of pages needed to hold totalItems.
func PageCount(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Window returns the run of page numbers to display around current.
//
// The window is centered on the current page and slides rather than
// shrinks at the edges: page 1 of 10 yields [1 2 3 4 5], page 10 yields
// [6 7 8 9 10]. Collections with five or fewer pages get every page.
func Window(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	current = NormalizePage(current, totalPages)

	start := current - 2
	end := current + 2
	if start < 1 {
		end += 1 - start
		start = 1
	}
	if end > totalPages {
		start -= end - totalPages
		end = totalPages
	}
	if start < 1 {
		start = 1
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}

// Describe builds the page metadata returned alongside listings.
func Describe(current, pageSize, totalItems int) Page {
	totalPages := PageCount(totalItems, pageSize)
	current = NormalizePage(current, totalPages)
	if totalPages == 0 {
		current = 1
	}
	return Page{
		Current:    current,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Window:     Window(current, totalPages),
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
	}
}

// Offset converts a page number into the number of rows to skip.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
