package models

// Permission levels. Exactly one global owner exists whenever there is
// at least one registered user; the first registrant gets it.
const (
	PermissionOwner  = 1
	PermissionMember = 2
)

// User is a registered account. The whole record (including the
// notification feed and activity counters) lives in the state graph and
// is persisted with it.
//
// Why int64 IDs and not UUIDs?
//   - Ids are assigned from a single monotonic counter owned by the
//     state holder. They are part of the wire contract (u_id), and
//     clients depend on them being small integers.
type User struct {
	ID            int64          `json:"id"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"password_hash"`
	NameFirst     string         `json:"name_first"`
	NameLast      string         `json:"name_last"`
	Handle        string         `json:"handle"`
	PermissionID  int            `json:"permission_id"`
	ProfileImgURL string         `json:"profile_img_url"`
	Notifications []Notification `json:"notifications"`
	Stats         UserStats      `json:"stats"`
}

// Profile is the member-facing view of a user, embedded in channel/DM
// details and profile lookups. Field names are the wire contract.
type Profile struct {
	UID           int64  `json:"u_id"`
	NameFirst     string `json:"name_first"`
	NameLast      string `json:"name_last"`
	Email         string `json:"email"`
	HandleStr     string `json:"handle_str"`
	ProfileImgURL string `json:"profile_img_url"`
}

func (u *User) Profile() Profile {
	return Profile{
		UID:           u.ID,
		NameFirst:     u.NameFirst,
		NameLast:      u.NameLast,
		Email:         u.Email,
		HandleStr:     u.Handle,
		ProfileImgURL: u.ProfileImgURL,
	}
}

// Channel is a chat room. Owners are always also members; the owner
// list is never empty while the channel exists.
type Channel struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	IsPublic bool       `json:"is_public"`
	Owners   []int64    `json:"owners"`
	Members  []int64    `json:"members"`
	Messages []*Message `json:"messages"`
	Standup  Standup    `json:"standup"`
}

func (c *Channel) IsMember(uid int64) bool {
	return containsID(c.Members, uid)
}

func (c *Channel) IsOwner(uid int64) bool {
	return containsID(c.Owners, uid)
}

// Standup is the per-channel batching window. While active, membership
// changes on the channel are rejected and standup/send lines accumulate
// in Buffer until the deadline flushes them as one message.
type Standup struct {
	IsActive   bool   `json:"is_active"`
	Buffer     string `json:"buffer"`
	TimeFinish int64  `json:"time_finish"`
}

// DM is a direct-message group. Its name is derived from the sorted
// handles of the initial member set and only the creator may remove it.
type DM struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatorID int64      `json:"creator_id"`
	Members   []int64    `json:"members"`
	Messages  []*Message `json:"messages"`
}

func (d *DM) IsMember(uid int64) bool {
	return containsID(d.Members, uid)
}

// Message ids are unique across channels and DMs combined. Content is
// overwritten in place by edits and by author removal ("Removed user").
type Message struct {
	ID          int64   `json:"id"`
	AuthorID    int64   `json:"author_id"`
	Content     string  `json:"content"`
	TimeCreated int64   `json:"time_created"`
	Reacts      []React `json:"reacts"`
	IsPinned    bool    `json:"is_pinned"`
}

// React holds the users who reacted with one reaction type. Every
// message carries the thumbs-up slot from creation so the read side
// always has a react entry to report.
type React struct {
	ReactID int     `json:"react_id"`
	UIDs    []int64 `json:"u_ids"`
}

const DefaultReactID = 1

// NewMessage builds a message with the default (empty) react slot.
func NewMessage(id, authorID int64, content string, timeCreated int64) *Message {
	return &Message{
		ID:          id,
		AuthorID:    authorID,
		Content:     content,
		TimeCreated: timeCreated,
		Reacts:      []React{{ReactID: DefaultReactID, UIDs: []int64{}}},
	}
}

// ReactView is a react entry resolved against the requesting user.
type ReactView struct {
	ReactID           int     `json:"react_id"`
	UIDs              []int64 `json:"u_ids"`
	IsThisUserReacted bool    `json:"is_this_user_reacted"`
}

// MessageView is the wire shape of a message.
type MessageView struct {
	MessageID   int64       `json:"message_id"`
	UID         int64       `json:"u_id"`
	Message     string      `json:"message"`
	TimeCreated int64       `json:"time_created"`
	Reacts      []ReactView `json:"reacts"`
	IsPinned    bool        `json:"is_pinned"`
}

// View resolves the message for a particular requester, marking which
// react slots the requester participates in.
func (m *Message) View(requester int64) MessageView {
	reacts := make([]ReactView, 0, len(m.Reacts))
	for _, r := range m.Reacts {
		reacts = append(reacts, ReactView{
			ReactID:           r.ReactID,
			UIDs:              r.UIDs,
			IsThisUserReacted: containsID(r.UIDs, requester),
		})
	}
	return MessageView{
		MessageID:   m.ID,
		UID:         m.AuthorID,
		Message:     m.Content,
		TimeCreated: m.TimeCreated,
		Reacts:      reacts,
		IsPinned:    m.IsPinned,
	}
}

// Notification is an invite or @mention event. Exactly one of
// ChannelID/DMID is a real id; the other is -1.
type Notification struct {
	ChannelID int64  `json:"channel_id"`
	DMID      int64  `json:"dm_id"`
	Message   string `json:"message"`
}

// NotificationView is the wire shape of a notification entry.
type NotificationView struct {
	ChannelID           int64  `json:"channel_id"`
	DMID                int64  `json:"dm_id"`
	NotificationMessage string `json:"notification_message"`
}

func (n Notification) View() NotificationView {
	return NotificationView{
		ChannelID:           n.ChannelID,
		DMID:                n.DMID,
		NotificationMessage: n.Message,
	}
}

// ChannelSummary is the id+name listing entry.
type ChannelSummary struct {
	ChannelID int64  `json:"channel_id"`
	Name      string `json:"name"`
}

// DMSummary is the id+name listing entry for DMs.
type DMSummary struct {
	DMID int64  `json:"dm_id"`
	Name string `json:"name"`
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
