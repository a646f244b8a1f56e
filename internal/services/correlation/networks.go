package correlation

import (
	"sort"
	"time"

	"aura/internal/domain"
)

// TemporalNetworks groups identities whose comments land within window of
// each other inside the same hour bucket. Links are transitive: a chain of
// comments each within window of the next forms one group even when its ends
// are further apart. Only groups of at least minGroup
// identities are reported; strength is the number of linking comment pairs.
func TemporalNetworks(comments []domain.Comment, window time.Duration, minGroup int) []domain.CoordinatedNetwork {
	buckets := map[time.Time][]domain.Comment{}
	for _, c := range comments {
		if c.UnifiedIdentityID == nil {
			continue
		}
		h := c.PostedAt.UTC().Truncate(time.Hour)
		buckets[h] = append(buckets[h], c)
	}
	hours := make([]time.Time, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	var out []domain.CoordinatedNetwork
	for _, h := range hours {
		cs := buckets[h]
		sort.Slice(cs, func(i, j int) bool { return cs[i].PostedAt.Before(cs[j].PostedAt) })

		uf := newUnionFind()
		var edges [][2]int64
		for i := range cs {
			uf.add(*cs[i].UnifiedIdentityID)
			for j := i + 1; j < len(cs); j++ {
				if cs[j].PostedAt.Sub(cs[i].PostedAt) > window {
					break
				}
				a, b := *cs[i].UnifiedIdentityID, *cs[j].UnifiedIdentityID
				if a == b {
					continue
				}
				uf.union(a, b)
				edges = append(edges, [2]int64{a, b})
			}
		}
		strength := map[int64]int{}
		for _, e := range edges {
			strength[uf.find(e[0])]++
		}
		var nets []domain.CoordinatedNetwork
		for root, members := range uf.groups() {
			if len(members) < minGroup {
				continue
			}
			nets = append(nets, domain.CoordinatedNetwork{
				Type:     domain.NetworkTemporal,
				Members:  members,
				Strength: strength[root],
				Window:   h.Format(time.RFC3339),
			})
		}
		sort.Slice(nets, func(i, j int) bool { return nets[i].Members[0] < nets[j].Members[0] })
		out = append(out, nets...)
	}
	return out
}

// ContentNetworks reports content hashes posted by at least minGroup distinct
// identities; strength is the number of comments carrying the hash.
func ContentNetworks(comments []domain.Comment, minGroup int) []domain.CoordinatedNetwork {
	type group struct {
		ids   map[int64]bool
		count int
	}
	byHash := map[string]*group{}
	for _, c := range comments {
		if c.UnifiedIdentityID == nil || c.ContentHash == "" {
			continue
		}
		g, ok := byHash[c.ContentHash]
		if !ok {
			g = &group{ids: map[int64]bool{}}
			byHash[c.ContentHash] = g
		}
		g.ids[*c.UnifiedIdentityID] = true
		g.count++
	}
	hashes := make([]string, 0, len(byHash))
	for h := range byHash {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	var out []domain.CoordinatedNetwork
	for _, h := range hashes {
		g := byHash[h]
		if len(g.ids) < minGroup {
			continue
		}
		members := make([]int64, 0, len(g.ids))
		for id := range g.ids {
			members = append(members, id)
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		out = append(out, domain.CoordinatedNetwork{Type: domain.NetworkContent, Members: members, Strength: g.count, Window: h})
	}
	return out
}

type unionFind struct{ parent map[int64]int64 }

func newUnionFind() *unionFind { return &unionFind{parent: map[int64]int64{}} }

func (u *unionFind) add(x int64) {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}
}

func (u *unionFind) find(x int64) int64 {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int64) {
	u.add(a)
	u.add(b)
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}

// groups returns sorted members keyed by root.
func (u *unionFind) groups() map[int64][]int64 {
	out := map[int64][]int64{}
	for x := range u.parent {
		r := u.find(x)
		out[r] = append(out[r], x)
	}
	for _, m := range out {
		sort.Slice(m, func(i, j int) bool { return m[i] < m[j] })
	}
	return out
}
