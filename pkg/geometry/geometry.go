// Package geometry ізолює всі полігональні операції планувальника:
// булева алгебра, буферизація, перетини відрізків. Решта коду не
// залежить від API конкретної геометричної бібліотеки.
package geometry

import (
	"math"
	"sort"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Region представляє плоску область як набір замкнених кілець.
// Внутрішність визначається правилом парності (even-odd), тому дірки
// після віднімання полігонів не потребують окремого маркування.
type Region []orb.Ring

// Segment представляє відрізок між двома точками.
type Segment struct {
	A, B orb.Point
}

// RingFromPoints будує замкнене кільце з послідовності вершин.
// Якщо перша та остання вершини не збігаються, кільце замикається.
func RingFromPoints(points []orb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	ring = append(ring, points...)
	if len(ring) > 0 && !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring
}

// Area повертає площу кільця (завжди невід'ємну).
func Area(ring orb.Ring) float64 {
	return math.Abs(planar.Area(ring))
}

// Centroid повертає центроїд кільця.
func Centroid(ring orb.Ring) orb.Point {
	c, _ := planar.CentroidArea(ring)
	return c
}

// Distance повертає евклідову відстань між двома точками.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// signedArea обчислює орієнтовану площу кільця за формулою шнурівки.
func signedArea(ring orb.Ring) float64 {
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

// ensureCCW повертає кільце з орієнтацією проти годинникової стрілки.
func ensureCCW(ring orb.Ring) orb.Ring {
	if signedArea(ring) >= 0 {
		return ring
	}
	reversed := make(orb.Ring, len(ring))
	for i, p := range ring {
		reversed[len(ring)-1-i] = p
	}
	return reversed
}

// toPolyclip конвертує кільце orb у полігон polyclip (без замикаючої вершини).
func toPolyclip(ring orb.Ring) polyclip.Polygon {
	contour := make(polyclip.Contour, 0, len(ring))
	for i, p := range ring {
		if i == len(ring)-1 && len(ring) > 1 && p.Equal(ring[0]) {
			break
		}
		contour = append(contour, polyclip.Point{X: p[0], Y: p[1]})
	}
	return polyclip.Polygon{contour}
}

// regionToPolyclip конвертує область у полігон polyclip з усіма контурами.
func regionToPolyclip(region Region) polyclip.Polygon {
	var poly polyclip.Polygon
	for _, ring := range region {
		poly = append(poly, toPolyclip(ring)[0])
	}
	return poly
}

// fromPolyclip конвертує результат polyclip назад у область.
func fromPolyclip(poly polyclip.Polygon) Region {
	region := make(Region, 0, len(poly))
	for _, contour := range poly {
		if len(contour) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(contour)+1)
		for _, p := range contour {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		ring = append(ring, ring[0])
		region = append(region, ring)
	}
	return region
}

// Union об'єднує набір кілець в одну область.
func Union(rings []orb.Ring) Region {
	if len(rings) == 0 {
		return nil
	}
	result := toPolyclip(rings[0])
	for _, ring := range rings[1:] {
		result = result.Construct(polyclip.UNION, toPolyclip(ring))
	}
	return fromPolyclip(result)
}

// Difference віднімає область clip від кільця subject.
// Результат може складатися з кількох кілець або бути порожнім.
func Difference(subject orb.Ring, clip Region) Region {
	if len(clip) == 0 {
		return Region{subject}
	}
	result := toPolyclip(subject).Construct(polyclip.DIFFERENCE, regionToPolyclip(clip))
	return fromPolyclip(result)
}

// Intersection повертає перетин двох кілець як область.
func Intersection(a, b orb.Ring) Region {
	result := toPolyclip(a).Construct(polyclip.INTERSECTION, toPolyclip(b))
	return fromPolyclip(result)
}

// Buffer розширює кільце назовні на задану відстань (стик miter).
func Buffer(ring orb.Ring, margin float64) orb.Ring {
	ccw := ensureCCW(ring)
	n := len(ccw)
	if n > 1 && ccw[0].Equal(ccw[n-1]) {
		n--
	}
	if n < 3 {
		return ring
	}

	// Обмеження довжини стику для дуже гострих кутів.
	maxMiter := 4 * margin

	out := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		prev := ccw[(i+n-1)%n]
		cur := ccw[i]
		next := ccw[(i+1)%n]

		n1 := outwardNormal(prev, cur)
		n2 := outwardNormal(cur, next)

		bx, by := n1[0]+n2[0], n1[1]+n2[1]
		blen := math.Hypot(bx, by)
		if blen < 1e-12 {
			// Розворот на 180 градусів, зсув уздовж першої нормалі.
			out = append(out, orb.Point{cur[0] + n1[0]*margin, cur[1] + n1[1]*margin})
			continue
		}
		bx, by = bx/blen, by/blen

		// Косинус половинного кута між сусідніми ребрами.
		cosHalf := math.Sqrt(math.Max(0, (1+n1[0]*n2[0]+n1[1]*n2[1])/2))
		length := maxMiter
		if cosHalf > margin/maxMiter {
			length = margin / cosHalf
		}
		out = append(out, orb.Point{cur[0] + bx*length, cur[1] + by*length})
	}
	out = append(out, out[0])
	return out
}

// outwardNormal повертає одиничну зовнішню нормаль ребра кільця CCW.
func outwardNormal(a, b orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return orb.Point{0, 0}
	}
	return orb.Point{dy / length, -dx / length}
}

// Bound повертає обмежувальний прямокутник області.
func (r Region) Bound() orb.Bound {
	if len(r) == 0 {
		return orb.Bound{}
	}
	bound := r[0].Bound()
	for _, ring := range r[1:] {
		bound = bound.Union(ring.Bound())
	}
	return bound
}

// Area повертає площу області з урахуванням дірок: кільця на парній
// глибині вкладеності додаються, на непарній — віднімаються.
func (r Region) Area() float64 {
	var total float64
	for i, ring := range r {
		if len(ring) < 4 {
			continue
		}
		depth := 0
		for j, other := range r {
			if i == j {
				continue
			}
			if planar.RingContains(other, ring[0]) {
				depth++
			}
		}
		if depth%2 == 0 {
			total += Area(ring)
		} else {
			total -= Area(ring)
		}
	}
	return total
}

// Contains перевіряє належність точки області за правилом парності.
func (r Region) Contains(p orb.Point) bool {
	inside := false
	for _, ring := range r {
		if planar.RingContains(ring, p) {
			inside = !inside
		}
	}
	return inside
}

// ClipHorizontal перетинає горизонтальну пряму y=const з областю та
// повертає впорядковані за x відрізки, що лежать усередині області.
func (r Region) ClipHorizontal(y float64) []Segment {
	var xs []float64
	for _, ring := range r {
		for i := 0; i+1 < len(ring); i++ {
			p1, p2 := ring[i], ring[i+1]
			if (p1[1] > y) == (p2[1] > y) {
				continue
			}
			t := (y - p1[1]) / (p2[1] - p1[1])
			xs = append(xs, p1[0]+t*(p2[0]-p1[0]))
		}
	}
	if len(xs) < 2 {
		return r.horizontalEdgesAt(y)
	}
	sort.Float64s(xs)

	segments := make([]Segment, 0, len(xs)/2)
	for i := 0; i+1 < len(xs); i += 2 {
		if xs[i+1]-xs[i] < 1e-9 {
			continue
		}
		segments = append(segments, Segment{
			A: orb.Point{xs[i], y},
			B: orb.Point{xs[i+1], y},
		})
	}
	return segments
}

// horizontalEdgesAt повертає горизонтальні ребра області, що лежать
// точно на y. Правило перетину рахує пряму лише строго між кінцями
// ребра, тому верхня межа області не дає жодного перетину і її ребра
// додаються безпосередньо.
func (r Region) horizontalEdgesAt(y float64) []Segment {
	var segments []Segment
	for _, ring := range r {
		for i := 0; i+1 < len(ring); i++ {
			p1, p2 := ring[i], ring[i+1]
			if math.Abs(p1[1]-y) > 1e-9 || math.Abs(p2[1]-y) > 1e-9 {
				continue
			}
			a, b := p1[0], p2[0]
			if a > b {
				a, b = b, a
			}
			if b-a < 1e-9 {
				continue
			}
			segments = append(segments, Segment{
				A: orb.Point{a, y},
				B: orb.Point{b, y},
			})
		}
	}
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].A[0] < segments[j].A[0]
	})
	return segments
}

// SegmentIntersects перевіряє, чи заходить відрізок у внутрішність
// області: або перетинає якесь ребро, або його середина лежить усередині.
// Дотик кінцем відрізка до межі та рух уздовж межі перетином не вважаються.
func (r Region) SegmentIntersects(a, b orb.Point) bool {
	for _, ring := range r {
		for i := 0; i+1 < len(ring); i++ {
			if properIntersection(a, b, ring[i], ring[i+1]) {
				return true
			}
		}
	}
	mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
	if r.onBoundary(mid) {
		return false
	}
	return r.Contains(mid)
}

// onBoundary перевіряє, чи лежить точка на межі області.
func (r Region) onBoundary(p orb.Point) bool {
	for _, ring := range r {
		for i := 0; i+1 < len(ring); i++ {
			if pointSegmentDistance(p, ring[i], ring[i+1]) < 1e-9 {
				return true
			}
		}
	}
	return false
}

// pointSegmentDistance повертає відстань від точки до відрізка.
func pointSegmentDistance(p, a, b orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 < 1e-18 {
		return planar.Distance(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return planar.Distance(p, orb.Point{a[0] + t*dx, a[1] + t*dy})
}

// PathIntersects перевіряє, чи перетинає ламана внутрішність області.
func (r Region) PathIntersects(points []orb.Point) bool {
	for i := 0; i+1 < len(points); i++ {
		if r.SegmentIntersects(points[i], points[i+1]) {
			return true
		}
	}
	return false
}

// NearestVertex повертає вершину області, найближчу до заданої точки.
func (r Region) NearestVertex(p orb.Point) orb.Point {
	best := orb.Point{}
	bestDist := math.Inf(1)
	for _, ring := range r {
		for i := 0; i+1 < len(ring); i++ {
			d := planar.DistanceSquared(ring[i], p)
			if d < bestDist {
				bestDist = d
				best = ring[i]
			}
		}
	}
	return best
}

// properIntersection перевіряє строгий перетин двох відрізків.
func properIntersection(p, q, r, s orb.Point) bool {
	d1 := orient(r, s, p)
	d2 := orient(r, s, q)
	d3 := orient(p, q, r)
	d4 := orient(p, q, s)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// orient обчислює орієнтацію трійки точок (знак векторного добутку).
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
