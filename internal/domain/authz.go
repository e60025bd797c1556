package domain

// Owned is any resource with a single owning user. Posts and comments share
// one modification rule, so the predicate takes the interface rather than a
// concrete type.
type Owned interface {
	OwnerID() string
}

// CanModify reports whether a principal may edit or delete a resource:
// admins always, otherwise only the owner.
func CanModify(res Owned, p Principal) bool {
	if p.IsAdmin() {
		return true
	}
	return !p.IsAnonymous() && res.OwnerID() == p.ID
}

// CanViewPost reports whether a principal may read a post. Published posts are
// visible to everyone, including anonymous callers; drafts only to their
// author or an admin.
func CanViewPost(post *Post, p Principal) bool {
	if post.Status == StatusPublished {
		return true
	}
	if p.IsAnonymous() {
		return false
	}
	return p.IsAdmin() || post.AuthorID == p.ID
}
