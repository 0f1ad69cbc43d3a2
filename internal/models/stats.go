package models

// Time-stamped count series. Each mutating operation appends a point to
// the affected series rather than overwriting it, so clients can chart
// activity over time. Field names per series are the wire contract.

type ChannelsJoinedPoint struct {
	NumChannelsJoined int   `json:"num_channels_joined"`
	TimeStamp         int64 `json:"time_stamp"`
}

type DMsJoinedPoint struct {
	NumDMsJoined int   `json:"num_dms_joined"`
	TimeStamp    int64 `json:"time_stamp"`
}

type MessagesSentPoint struct {
	NumMessagesSent int   `json:"num_messages_sent"`
	TimeStamp       int64 `json:"time_stamp"`
}

type ChannelsExistPoint struct {
	NumChannelsExist int   `json:"num_channels_exist"`
	TimeStamp        int64 `json:"time_stamp"`
}

type DMsExistPoint struct {
	NumDMsExist int   `json:"num_dms_exist"`
	TimeStamp   int64 `json:"time_stamp"`
}

type MessagesExistPoint struct {
	NumMessagesExist int   `json:"num_messages_exist"`
	TimeStamp        int64 `json:"time_stamp"`
}

// UserStats tracks one user's joins and sends. InvolvementRate is
// derived (joins+sends over everything that exists) and recomputed
// whenever the workspace stats refresh.
type UserStats struct {
	ChannelsJoined  []ChannelsJoinedPoint `json:"channels_joined"`
	DMsJoined       []DMsJoinedPoint      `json:"dms_joined"`
	MessagesSent    []MessagesSentPoint   `json:"messages_sent"`
	InvolvementRate float64               `json:"involvement_rate"`
}

// NewUserStats seeds every series with a zero point at registration.
func NewUserStats(now int64) UserStats {
	return UserStats{
		ChannelsJoined: []ChannelsJoinedPoint{{NumChannelsJoined: 0, TimeStamp: now}},
		DMsJoined:      []DMsJoinedPoint{{NumDMsJoined: 0, TimeStamp: now}},
		MessagesSent:   []MessagesSentPoint{{NumMessagesSent: 0, TimeStamp: now}},
	}
}

func (s *UserStats) ChannelsJoinedNow() int {
	return s.ChannelsJoined[len(s.ChannelsJoined)-1].NumChannelsJoined
}

func (s *UserStats) DMsJoinedNow() int {
	return s.DMsJoined[len(s.DMsJoined)-1].NumDMsJoined
}

func (s *UserStats) MessagesSentNow() int {
	return s.MessagesSent[len(s.MessagesSent)-1].NumMessagesSent
}

// WorkspaceStats tracks what exists across the whole workspace.
// UtilizationRate is the fraction of users in at least one channel or DM.
type WorkspaceStats struct {
	ChannelsExist   []ChannelsExistPoint `json:"channels_exist"`
	DMsExist        []DMsExistPoint      `json:"dms_exist"`
	MessagesExist   []MessagesExistPoint `json:"messages_exist"`
	UtilizationRate float64              `json:"utilization_rate"`
}

// NewWorkspaceStats seeds every series with a zero point.
func NewWorkspaceStats(now int64) WorkspaceStats {
	return WorkspaceStats{
		ChannelsExist: []ChannelsExistPoint{{NumChannelsExist: 0, TimeStamp: now}},
		DMsExist:      []DMsExistPoint{{NumDMsExist: 0, TimeStamp: now}},
		MessagesExist: []MessagesExistPoint{{NumMessagesExist: 0, TimeStamp: now}},
	}
}

func (s *WorkspaceStats) ChannelsExistNow() int {
	return s.ChannelsExist[len(s.ChannelsExist)-1].NumChannelsExist
}

func (s *WorkspaceStats) DMsExistNow() int {
	return s.DMsExist[len(s.DMsExist)-1].NumDMsExist
}

func (s *WorkspaceStats) MessagesExistNow() int {
	return s.MessagesExist[len(s.MessagesExist)-1].NumMessagesExist
}
