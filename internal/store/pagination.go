package store

import (
	"context"

	"github.com/mesh-intelligence/reindex/pkg/types"
)

// PageArgs are the relay connection arguments. Zero First or Last means the
// side is not limited; cursors are row keys.
type PageArgs struct {
	First  int
	Last   int
	After  string
	Before string
}

// PageInfoSource yields the page info of a connection window.
type PageInfoSource interface {
	PageInfo(ctx context.Context, b *Backend) (types.PageInfo, error)
}

// StaticPageInfo is page info already known without running a query.
type StaticPageInfo types.PageInfo

// PageInfo returns p unchanged.
func (p StaticPageInfo) PageInfo(context.Context, *Backend) (types.PageInfo, error) {
	return types.PageInfo(p), nil
}

// pageInfoQuery computes page info by counting the rows of the unwindowed
// query.
type pageInfoQuery struct {
	base  *Query
	first int
	last  int
}

func (p pageInfoQuery) PageInfo(ctx context.Context, b *Backend) (types.PageInfo, error) {
	if p.first == 0 && p.last == 0 {
		return types.PageInfo{}, nil
	}
	total, err := b.GetCount(ctx, p.base)
	if err != nil {
		return types.PageInfo{}, err
	}
	var info types.PageInfo
	inWindow := total
	if p.first > 0 && total > p.first {
		info.HasNextPage = true
		inWindow = p.first
	}
	if p.last > 0 && inWindow > p.last {
		info.HasPreviousPage = true
	}
	return info, nil
}

// Paginate orders query by row key, applies the cursor bounds and window of
// args, and returns the windowed query with its page info source.
func Paginate(query *Query, args PageArgs) (*Query, PageInfoSource, error) {
	if args.First < 0 {
		return nil, nil, types.NewUserError(`Argument "first" must be a non-negative integer`)
	}
	if args.Last < 0 {
		return nil, nil, types.NewUserError(`Argument "last" must be a non-negative integer`)
	}
	base := query.OrderBy("id")
	if args.After != "" {
		base = base.After(args.After)
	}
	if args.Before != "" {
		base = base.Before(args.Before)
	}
	page := base
	if args.First > 0 {
		page = page.Limit(args.First)
	}
	if args.Last > 0 {
		page = page.Last(args.Last)
	}
	return page, pageInfoQuery{base: base, first: args.First, last: args.Last}, nil
}
