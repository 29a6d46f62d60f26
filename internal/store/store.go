package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"resumio/internal/catalog"
	"resumio/internal/document"
	"resumio/internal/errcode"
)

// FreePlanMaxResumes 是免费套餐允许同时拥有的文档数。
const FreePlanMaxResumes = 3

// Store 持有单个用户的权威文档集合，并在每次变更后整体写回持久化端口。
// 同一集合上的变更由内部互斥锁串行化：限额检查与追加、删除与取消选中
// 必须是原子的。
type Store struct {
	user        Profile
	persistence Persistence
	notifier    Notifier
	logger      *slog.Logger
	maxResumes  int

	now func() time.Time

	mu      sync.Mutex
	loaded  bool
	docs    []document.Resume
	current *document.Resume
}

// NewStore 构造绑定到某个已认证用户的 Store。
// maxResumes 不大于 0 时使用免费套餐默认额度。
func NewStore(user Profile, persistence Persistence, notifier Notifier, logger *slog.Logger, maxResumes int) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxResumes <= 0 {
		maxResumes = FreePlanMaxResumes
	}
	return &Store{
		user:        user,
		persistence: persistence,
		notifier:    notifier,
		logger:      logger,
		maxResumes:  maxResumes,
		now:         time.Now,
	}
}

// ensureLoaded 在首次访问时读入集合。损坏的数据按不存在处理并重建为空集合。
func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	docs, err := s.persistence.Load(ctx, s.user.ID)
	switch {
	case err == nil:
		s.docs = docs
	case errors.Is(err, ErrPersistenceCorrupt):
		s.logger.Warn("stored collection unreadable, reseeding empty",
			slog.Uint64("user_id", uint64(s.user.ID)),
			slog.Any("error", err),
		)
		s.docs = nil
		if saveErr := s.persistence.Save(ctx, s.user.ID, nil); saveErr != nil {
			return fmt.Errorf("reseed collection: %w", saveErr)
		}
	default:
		return fmt.Errorf("load collection: %w", err)
	}

	s.loaded = true
	return nil
}

// Create 按模板与配色创建一份空白简历并返回新文档 ID。
// 前置条件失败在任何变更之前中止，并同时通过错误与通知上报。
func (s *Store) Create(ctx context.Context, templateID, colorID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.createPreconditions(ctx, templateID, colorID); err != nil {
		s.notifyError(ctx, "resume.created", "", err)
		return "", err
	}

	tpl, _ := catalog.Find(templateID)
	color := catalog.DefaultColor(tpl)
	if colorID != "" {
		color, _ = catalog.FindColor(tpl, colorID)
	}

	now := s.now().UTC()
	doc := document.Resume{
		ID:         document.NewID(now),
		UserID:     strconv.FormatUint(uint64(s.user.ID), 10),
		Name:       "Untitled Resume",
		CreatedAt:  now.Format(time.RFC3339Nano),
		UpdatedAt:  now.Format(time.RFC3339Nano),
		TemplateID: templateID,
		ColorID:    color.ID,
		Colors: &document.Colors{
			Primary:   color.Primary,
			Secondary: color.Secondary,
			Accent:    color.Accent,
		},
		PersonalInfo: document.PersonalInfo{
			FullName: seedFullName(s.user),
			Email:    s.user.Email,
		},
		Education:  []document.Education{},
		Experience: []document.Experience{},
		Skills:     []document.Skill{},
	}

	s.docs = append(s.docs, doc)
	if err := s.persistence.Save(ctx, s.user.ID, s.docs); err != nil {
		// 写回失败时回滚内存变更，保持两侧一致。
		s.docs = s.docs[:len(s.docs)-1]
		err = fmt.Errorf("persist collection: %w", err)
		s.notifyError(ctx, "resume.created", doc.ID, err)
		return "", err
	}

	s.notifier.Notify(ctx, s.user.ID, Notice{
		Event:    "resume.created",
		Status:   "completed",
		ResumeID: doc.ID,
		Code:     errcode.OK,
		Message:  "Your new resume has been created successfully.",
	})
	return doc.ID, nil
}

func (s *Store) createPreconditions(ctx context.Context, templateID, colorID string) error {
	if !s.user.Authenticated() {
		return ErrUnauthenticated
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if len(s.docs) >= s.maxResumes {
		return ErrQuotaExceeded
	}
	tpl, ok := catalog.Find(templateID)
	if !ok {
		return ErrTemplateNotFound
	}
	if colorID != "" {
		if _, ok := catalog.FindColor(tpl, colorID); !ok {
			return ErrColorNotFound
		}
	}
	return nil
}

// Update 将补丁浅合并到指定文档上，并无条件刷新 UpdatedAt。
// 文档不存在时返回 ErrNotFound，状态不变。
func (s *Store) Update(ctx context.Context, id string, patch document.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		s.notifyError(ctx, "resume.updated", id, ErrNotFound)
		return ErrNotFound
	}

	patch.EnsureEntryIDs()
	merged := patch.Apply(s.docs[idx])
	if err := s.resolveReferences(&merged, patch); err != nil {
		s.notifyError(ctx, "resume.updated", id, err)
		return err
	}
	merged.UpdatedAt = s.now().UTC().Format(time.RFC3339Nano)

	previous := s.docs[idx]
	s.docs[idx] = merged
	if err := s.persistence.Save(ctx, s.user.ID, s.docs); err != nil {
		s.docs[idx] = previous
		err = fmt.Errorf("persist collection: %w", err)
		s.notifyError(ctx, "resume.updated", id, err)
		return err
	}

	// 若正在编辑的就是这份文档，同步当前选中，避免两份视图不一致。
	if s.current != nil && s.current.ID == id {
		clone := merged.Clone()
		s.current = &clone
	}

	s.notifier.Notify(ctx, s.user.ID, Notice{
		Event:    "resume.updated",
		Status:   "completed",
		ResumeID: id,
		Code:     errcode.OK,
		Message:  "Your changes have been saved.",
	})
	return nil
}

// resolveReferences 在补丁改变模板或配色时重新校验引用并刷新配色快照。
func (s *Store) resolveReferences(doc *document.Resume, patch document.Patch) error {
	if patch.TemplateID == nil && patch.ColorID == nil {
		return nil
	}

	tpl, ok := catalog.Find(doc.TemplateID)
	if !ok {
		return ErrTemplateNotFound
	}

	color, ok := catalog.FindColor(tpl, doc.ColorID)
	if !ok {
		if patch.ColorID != nil {
			return ErrColorNotFound
		}
		// 换模板后旧配色失效：回落到新模板的默认配色。
		color = catalog.DefaultColor(tpl)
		doc.ColorID = color.ID
	}

	if patch.Colors == nil {
		doc.Colors = &document.Colors{
			Primary:   color.Primary,
			Secondary: color.Secondary,
			Accent:    color.Accent,
		}
	}
	return nil
}

// Delete 删除指定文档。目标不存在时是无操作，不报错。
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	previous := s.docs
	s.docs = append(append([]document.Resume{}, s.docs[:idx]...), s.docs[idx+1:]...)
	if err := s.persistence.Save(ctx, s.user.ID, s.docs); err != nil {
		s.docs = previous
		err = fmt.Errorf("persist collection: %w", err)
		s.notifyError(ctx, "resume.deleted", id, err)
		return err
	}

	if s.current != nil && s.current.ID == id {
		s.current = nil
	}

	s.notifier.Notify(ctx, s.user.ID, Notice{
		Event:    "resume.deleted",
		Status:   "completed",
		ResumeID: id,
		Code:     errcode.OK,
		Message:  "Your resume has been deleted successfully.",
	})
	return nil
}

// Get 返回指定文档的副本。
func (s *Store) Get(ctx context.Context, id string) (document.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return document.Resume{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return document.Resume{}, ErrNotFound
	}
	return s.docs[idx].Clone(), nil
}

// Resumes 返回集合的副本，顺序即创建顺序。
func (s *Store) Resumes(ctx context.Context) ([]document.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]document.Resume, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.Clone())
	}
	return out, nil
}

// SetCurrent 标记当前正在编辑的文档，nil 表示清空选中。与持久化无关。
func (s *Store) SetCurrent(doc *document.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc == nil {
		s.current = nil
		return
	}
	clone := doc.Clone()
	s.current = &clone
}

// Current 返回当前选中文档的副本，无选中时返回 nil。
func (s *Store) Current() *document.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	clone := s.current.Clone()
	return &clone
}

// QuotaReached 报告是否已达到套餐额度。
func (s *Store) QuotaReached(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	return len(s.docs) >= s.maxResumes, nil
}

func (s *Store) indexOf(id string) int {
	for i, d := range s.docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) notifyError(ctx context.Context, event, resumeID string, err error) {
	code := errcode.SystemError
	switch {
	case errors.Is(err, ErrQuotaExceeded):
		code = errcode.QuotaExceeded
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTemplateNotFound), errors.Is(err, ErrColorNotFound):
		code = errcode.NotFound
	}
	s.notifier.Notify(ctx, s.user.ID, Notice{
		Event:    event,
		Status:   "error",
		ResumeID: resumeID,
		Code:     code,
		Message:  err.Error(),
	})
}

// seedFullName 优先使用账号里的展示名，否则回落到邮箱本地部分。
func seedFullName(user Profile) string {
	if name := strings.TrimSpace(user.FullName); name != "" {
		return name
	}
	if at := strings.IndexByte(user.Email, '@'); at > 0 {
		return user.Email[:at]
	}
	return ""
}
