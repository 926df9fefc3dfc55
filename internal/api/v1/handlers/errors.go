package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
)

// Project error messages
const (
	ErrMsgProjNameRequired = "Project name is required"
	ErrMsgProjNotFound     = "Project not found"
	ErrMsgProjCreateFailed = "Failed to create project"
	ErrMsgProjListFailed   = "Failed to list projects"
	ErrMsgProjUpdateFailed = "Failed to update project"
	ErrMsgProjDeleteFailed = "Failed to delete project"
)

// Task error messages
const (
	ErrMsgTaskTitleRequired = "Task title is required"
	ErrMsgTaskNotFound      = "Task not found"
	ErrMsgTaskCreateFailed  = "Failed to create task"
	ErrMsgTaskListFailed    = "Failed to list tasks"
	ErrMsgTaskUpdateFailed  = "Failed to update task"
	ErrMsgTaskMoveFailed    = "Failed to move task"
	ErrMsgTaskDeleteFailed  = "Failed to delete task"
	ErrMsgTaskStatusInvalid = "Invalid task status"
)

// Comment and attachment error messages
const (
	ErrMsgCommentBodyRequired   = "Comment body is required"
	ErrMsgCommentCreateFailed   = "Failed to create comment"
	ErrMsgCommentListFailed     = "Failed to list comments"
	ErrMsgCommentDeleteFailed   = "Failed to delete comment"
	ErrMsgAttachmentNotFound    = "Attachment not found"
	ErrMsgAttachmentSaveFailed  = "Failed to save attachment"
	ErrMsgAttachmentListFailed  = "Failed to list attachments"
	ErrMsgAttachmentFetchFailed = "Failed to fetch attachment"
)

// Channel and message error messages
const (
	ErrMsgChannelNameRequired = "Channel name is required"
	ErrMsgChannelNotFound     = "Channel not found"
	ErrMsgChannelCreateFailed = "Failed to create channel"
	ErrMsgChannelListFailed   = "Failed to list channels"
	ErrMsgMessageBodyRequired = "Message body is required"
	ErrMsgMessagePostFailed   = "Failed to post message"
	ErrMsgMessageListFailed   = "Failed to list messages"
)

// Notification error messages
const (
	ErrMsgNotifListFailed = "Failed to list notifications"
	ErrMsgNotifMarkFailed = "Failed to mark notification"
)

// User error messages
const (
	ErrMsgUsernameRequired = "Username is required"
	ErrMsgUserNotFound     = "User not found"
	ErrMsgCreateUserFailed = "Failed to create user"
	ErrMsgGetUserFailed    = "Failed to get user"
)

// AI error messages
const (
	ErrMsgHealthFailed      = "Failed to compute health score"
	ErrMsgSuggestionsFailed = "Failed to compute suggestions"
	ErrMsgReportFailed      = "Failed to compute report"
	ErrMsgDocumentRequired  = "Document text is required"
	ErrMsgCalendarFailed    = "Failed to list deadlines"
)
