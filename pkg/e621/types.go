package e621

import "time"

// Post is a single submission record as returned by the e621 API. It is a
// read-only snapshot: the client builds one fresh from each response body
// and never caches it.
//
// Media URL fields are pointers because the API serves JSON null for posts
// whose files are hidden from anonymous callers. When Config.FixURLs is
// enabled every returned post has had FixPostURLs applied, so all URL
// pointers are non-nil.
type Post struct {
	ID            int           `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	File          File          `json:"file"`
	Preview       Preview       `json:"preview"`
	Sample        Sample        `json:"sample"`
	Score         Score         `json:"score"`
	Tags          Tags          `json:"tags"`
	LockedTags    []string      `json:"locked_tags"`
	ChangeSeq     int           `json:"change_seq"`
	Flags         Flags         `json:"flags"`
	Rating        string        `json:"rating"` // s, q or e
	FavCount      int           `json:"fav_count"`
	Sources       []string      `json:"sources"`
	Pools         []int         `json:"pools"`
	Relationships Relationships `json:"relationships"`
	ApproverID    *int          `json:"approver_id"`
	UploaderID    int           `json:"uploader_id"`
	Description   string        `json:"description"`
	CommentCount  int           `json:"comment_count"`
	IsFavorited   *bool         `json:"is_favorited,omitempty"` // only with auth
	HasNotes      bool          `json:"has_notes"`
	Duration      *float64      `json:"duration"`
}

// File describes the full-size media file of a post.
type File struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Ext    string  `json:"ext"`
	Size   int     `json:"size"`
	MD5    string  `json:"md5"`
	URL    *string `json:"url"`
}

// Preview describes the thumbnail of a post.
type Preview struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	URL    *string `json:"url"`
}

// Sample describes the scaled-down sample of a post, if one exists.
type Sample struct {
	Has    bool    `json:"has"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	URL    *string `json:"url"`
}

// Score holds the vote tallies of a post.
type Score struct {
	Up    int `json:"up"`
	Down  int `json:"down"`
	Total int `json:"total"`
}

// Tags maps each tag category to its list of tag strings.
type Tags struct {
	General   []string `json:"general"`
	Artist    []string `json:"artist"`
	Copyright []string `json:"copyright"`
	Character []string `json:"character"`
	Species   []string `json:"species"`
	Invalid   []string `json:"invalid"`
	Lore      []string `json:"lore"`
	Meta      []string `json:"meta"`
}

// All returns the union of every category's tags.
func (t Tags) All() []string {
	out := make([]string, 0,
		len(t.General)+len(t.Artist)+len(t.Copyright)+len(t.Character)+
			len(t.Species)+len(t.Invalid)+len(t.Lore)+len(t.Meta))
	for _, category := range [][]string{
		t.General, t.Artist, t.Copyright, t.Character,
		t.Species, t.Invalid, t.Lore, t.Meta,
	} {
		out = append(out, category...)
	}
	return out
}

// Flags holds the moderation state of a post.
type Flags struct {
	Pending      bool `json:"pending"`
	Flagged      bool `json:"flagged"`
	NoteLocked   bool `json:"note_locked"`
	StatusLocked bool `json:"status_locked"`
	RatingLocked bool `json:"rating_locked"`
	Deleted      bool `json:"deleted"`
}

// Relationships holds a post's parent/child links.
type Relationships struct {
	ParentID          *int  `json:"parent_id"`
	HasChildren       bool  `json:"has_children"`
	HasActiveChildren bool  `json:"has_active_children"`
	Children          []int `json:"children"`
}

// postsResponse is the envelope of the list endpoint.
type postsResponse struct {
	Posts []Post `json:"posts"`
}

// postResponse is the envelope of the single-post endpoints.
type postResponse struct {
	Post Post `json:"post"`
}
