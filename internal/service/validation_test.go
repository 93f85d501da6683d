package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationField(t *testing.T, err error) string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "attendu ValidationError, obtenu %v", err)
	return verr.Field
}

func TestValidateThread(t *testing.T) {
	valid := CreateThreadRequest{Title: "Titre", Body: "Corps", Category: "discussion"}

	tests := []struct {
		name      string
		mutate    func(r *CreateThreadRequest)
		wantField string
	}{
		{name: "Requête valide", mutate: func(r *CreateThreadRequest) {}},
		{name: "Titre de 200 caractères accepté", mutate: func(r *CreateThreadRequest) { r.Title = strings.Repeat("a", 200) }},
		{name: "Titre accentué de 200 caractères accepté", mutate: func(r *CreateThreadRequest) { r.Title = strings.Repeat("é", 200) }},
		{name: "Titre de 201 caractères refusé", mutate: func(r *CreateThreadRequest) { r.Title = strings.Repeat("a", 201) }, wantField: "title"},
		{name: "Titre vide", mutate: func(r *CreateThreadRequest) { r.Title = "   " }, wantField: "title"},
		{name: "Corps uniquement composé d'espaces", mutate: func(r *CreateThreadRequest) { r.Body = " \t\n " }, wantField: "body"},
		{name: "Corps trop long", mutate: func(r *CreateThreadRequest) { r.Body = strings.Repeat("a", 10001) }, wantField: "body"},
		{name: "Catégorie manquante", mutate: func(r *CreateThreadRequest) { r.Category = "" }, wantField: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := ValidateThread(req)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantField, validationField(t, err))
		})
	}
}

func TestValidatePost(t *testing.T) {
	threadID := uuid.New().String()

	assert.NoError(t, ValidatePost(CreatePostRequest{ThreadID: threadID, Content: "Bonjour"}))
	assert.NoError(t, ValidatePost(CreatePostRequest{ThreadID: threadID, Content: strings.Repeat("a", 10000)}))

	assert.Equal(t, "content", validationField(t, ValidatePost(CreatePostRequest{ThreadID: threadID, Content: strings.Repeat("a", 10001)})))
	assert.Equal(t, "content", validationField(t, ValidatePost(CreatePostRequest{ThreadID: threadID, Content: "  "})))
	assert.Equal(t, "threadId", validationField(t, ValidatePost(CreatePostRequest{Content: "Bonjour"})))
	assert.Equal(t, "threadId", validationField(t, ValidatePost(CreatePostRequest{ThreadID: "pas-un-uuid", Content: "Bonjour"})))
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, ValidateComment(CreateCommentRequest{PostID: postOneID, Content: strings.Repeat("a", 5000)}, false))

	assert.Equal(t, "content", validationField(t, ValidateComment(CreateCommentRequest{PostID: postOneID, Content: strings.Repeat("a", 5001)}, false)))
	assert.Equal(t, "postId", validationField(t, ValidateComment(CreateCommentRequest{Content: "Merci"}, false)))
	assert.Equal(t, "parentId", validationField(t, ValidateComment(CreateCommentRequest{PostID: postOneID, Content: "Merci"}, true)))
	assert.NoError(t, ValidateComment(CreateCommentRequest{PostID: postOneID, Content: "Merci", ParentID: stringPtr(commentSevenID)}, true))
	assert.Equal(t, "postId", validationField(t, ValidateComment(CreateCommentRequest{PostID: "abc", Content: "Merci"}, false)))
	assert.Equal(t, "parentId", validationField(t, ValidateComment(CreateCommentRequest{PostID: postOneID, Content: "Merci", ParentID: stringPtr("abc")}, false)))
}

func TestValidateAliasName(t *testing.T) {
	assert.NoError(t, ValidateAliasName("abc"))
	assert.NoError(t, ValidateAliasName(strings.Repeat("x", 50)))
	assert.Equal(t, "alias", validationField(t, ValidateAliasName("ab")))
	assert.Equal(t, "alias", validationField(t, ValidateAliasName(strings.Repeat("x", 51))))
}
