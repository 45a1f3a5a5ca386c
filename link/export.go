package link

import (
	"context"
	"fmt"
	"io"

	"github.com/ipld/go-car/v2"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/ipld/go-ipld-prime/traversal/selector"
	"github.com/ipld/go-ipld-prime/traversal/selector/builder"
)

// Export writes a CARv1 containing every block reachable from the given root
// link to the given io.Writer and returns the number of bytes written.
func (s *Store) Export(ctx context.Context, rootLink datamodel.Link, out io.Writer) (int64, error) {
	root, ok := rootLink.(cidlink.Link)
	if !ok {
		return 0, fmt.Errorf("cannot export non-cid link %v", rootLink)
	}
	ssb := builder.NewSelectorSpecBuilder(basicnode.Prototype.Any)
	sel := ssb.ExploreRecursive(selector.RecursionLimitNone(), ssb.ExploreAll(ssb.ExploreRecursiveEdge()))

	w, err := car.NewSelectiveWriter(ctx, &s.lsys, root.Cid, sel.Node(), car.WriteAsCarV1(true))
	if err != nil {
		return 0, err
	}
	return w.WriteTo(out)
}
