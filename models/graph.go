package models

// GraphNode is one team in the schedule graph.
type GraphNode struct {
	TeamID  int    `json:"team_id"`
	Name    string `json:"name"`
	Visited bool   `json:"visited"`
	Roster  int    `json:"roster"`
}

// GraphEdge connects two teams that played each other. Multiple matches
// between the same pair collapse into one edge; MatchID and Result come
// from the representative match.
type GraphEdge struct {
	SourceTeamID int    `json:"source_team_id"`
	TargetTeamID int    `json:"target_team_id"`
	MatchID      int    `json:"match_id"`
	Result       string `json:"result"`
}

// ScheduleGraph is the full BFS output: the adjacency view of the schedule
// plus the traversal order from the start team.
type ScheduleGraph struct {
	Nodes      []GraphNode `json:"nodes"`
	Edges      []GraphEdge `json:"edges"`
	Order      []int       `json:"order"`
	TotalTeams int         `json:"total_teams"`
	TotalEdges int         `json:"total_edges"`
}
