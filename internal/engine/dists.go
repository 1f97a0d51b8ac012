package engine

import "math"

// Dists computes pairwise displacement and distance matrices from a
// set of cell positions. The displacement points from cell i toward
// cell j: xDist(i, j) = x_j - x_i and yDist(i, j) = y_j - y_i, so
// dist(i, j) = sqrt(xDist^2 + yDist^2). All three diagonals are
// exactly zero. Pure function of its input; N=0 and N=1 yield empty
// and 1x1 zero matrices.
func Dists(pos Positions) (xDist, yDist, dist *Matrix) {
	n := len(pos)
	xDist, yDist, dist = NewMatrix(n), NewMatrix(n), NewMatrix(n)

	for i := 0; i < n; i++ {
		yi, xi := pos[i][0], pos[i][1]
		row := i * n
		for j := 0; j < n; j++ {
			dx := pos[j][1] - xi
			dy := pos[j][0] - yi
			xDist.Data[row+j] = dx
			yDist.Data[row+j] = dy
			dist.Data[row+j] = math.Sqrt(dx*dx + dy*dy)
		}
	}

	return xDist, yDist, dist
}
