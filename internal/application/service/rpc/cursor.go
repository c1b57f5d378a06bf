package rpc

import "strconv"

func parseCursor(cursor string) (int, error) {
	return strconv.Atoi(cursor)
}
