package domain

// VideoWithCommentCount is a video annotated with its live comment count
type VideoWithCommentCount struct {
	Video        `bson:",inline"`
	CommentCount int64 `bson:"comment_count" json:"commentCount"`
}

// OverallStats 全域統計, 計算範圍是過濾後的集合而非當前頁
type OverallStats struct {
	TotalVideos   int64 `bson:"total_videos" json:"totalVideos"`
	TotalViews    int64 `bson:"total_views" json:"totalViews"`
	TotalLikes    int64 `bson:"total_likes" json:"totalLikes"`
	TotalComments int64 `bson:"total_comments" json:"totalComments"`
}

// Pagination describe the analytics page window
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// AnalyticsPage usecase video analytics response
type AnalyticsPage struct {
	Videos     []VideoWithCommentCount `json:"videos"`
	Pagination Pagination              `json:"pagination"`
	Overall    OverallStats            `json:"overallStats"`
}

// VideoStats usecase single video aggregate response
type VideoStats struct {
	Video        *Video              `json:"video"`
	CommentCount int64               `json:"commentCount"`
	Comments     []CommentWithAuthor `json:"comments"`
}
