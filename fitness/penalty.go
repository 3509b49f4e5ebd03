package fitness

// CoMappings returns, per application, the ascending set of other
// applications with at least one actor on a processor it also uses.
func CoMappings(procs []int, appOf func(actor int) int, numApps int) [][]int {
	uses := make([]map[int]bool, numApps)
	for app := range uses {
		uses[app] = map[int]bool{}
	}
	for a, proc := range procs {
		uses[appOf(a)][proc] = true
	}

	out := make([][]int, numApps)
	for i := 0; i < numApps; i++ {
		for j := 0; j < numApps; j++ {
			if i != j && overlaps(uses[i], uses[j]) {
				out[i] = append(out[i], j)
			}
		}
	}

	return out
}

func overlaps(a, b map[int]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}

	return false
}

// MappingPenalty returns penalty[i] plus the penalties of every application
// in co[i], for each application i.
func MappingPenalty(penalty []int64, co [][]int) []int64 {
	out := make([]int64, len(co))
	for i, apps := range co {
		out[i] = penalty[i]
		for _, j := range apps {
			out[i] += penalty[j]
		}
	}

	return out
}
