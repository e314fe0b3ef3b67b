package cart

import "context"

// Service is the single source of truth for a session's bag and wishlist.
// Every mutation loads the current collection, applies the change, and
// persists the whole collection synchronously before returning.
type Service struct {
	Repo Repository
}

func (s *Service) Bag(ctx context.Context, sessionID string) (*Bag, error) {
	return s.Repo.LoadBag(ctx, sessionID)
}

func (s *Service) AddItem(ctx context.Context, sessionID string, item Line) (Result, error) {
	b, err := s.Repo.LoadBag(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	res := b.Add(item)
	if res.Outcome == Rejected {
		return res, nil
	}
	return res, s.Repo.SaveBag(ctx, sessionID, b)
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, variantID, sizeID int64) (Result, error) {
	b, err := s.Repo.LoadBag(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	res := b.Remove(variantID, sizeID)
	if res.Outcome == Rejected {
		return res, nil
	}
	return res, s.Repo.SaveBag(ctx, sessionID, b)
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, variantID, sizeID int64, quantity int) (Result, error) {
	b, err := s.Repo.LoadBag(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	res := b.SetQuantity(variantID, sizeID, quantity)
	if res.Outcome == Rejected {
		return res, nil
	}
	return res, s.Repo.SaveBag(ctx, sessionID, b)
}

func (s *Service) ToggleDrawer(ctx context.Context, sessionID string) (bool, error) {
	b, err := s.Repo.LoadBag(ctx, sessionID)
	if err != nil {
		return false, err
	}
	open := b.Toggle()
	return open, s.Repo.SaveBag(ctx, sessionID, b)
}

func (s *Service) ClearBag(ctx context.Context, sessionID string) error {
	b, err := s.Repo.LoadBag(ctx, sessionID)
	if err != nil {
		return err
	}
	b.Clear()
	return s.Repo.SaveBag(ctx, sessionID, b)
}

// Wishlist loads the wishlist, reconciles it against the bag, persists when
// anything moved, and reports the moved product ids so the caller can show a
// "moved to bag" notice.
func (s *Service) Wishlist(ctx context.Context, sessionID string) (*Wishlist, []int64, error) {
	w, err := s.Repo.LoadWishlist(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.Repo.LoadBag(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	moved := w.Reconcile(b)
	if len(moved) > 0 {
		if err := s.Repo.SaveWishlist(ctx, sessionID, w); err != nil {
			return nil, nil, err
		}
	}
	return w, moved, nil
}

func (s *Service) AddToWishlist(ctx context.Context, sessionID string, productID int64) (bool, error) {
	w, err := s.Repo.LoadWishlist(ctx, sessionID)
	if err != nil {
		return false, err
	}
	added := w.Add(productID)
	if !added {
		return false, nil
	}
	return true, s.Repo.SaveWishlist(ctx, sessionID, w)
}

func (s *Service) RemoveFromWishlist(ctx context.Context, sessionID string, productID int64) error {
	w, err := s.Repo.LoadWishlist(ctx, sessionID)
	if err != nil {
		return err
	}
	if !w.Remove(productID) {
		return nil
	}
	return s.Repo.SaveWishlist(ctx, sessionID, w)
}

func (s *Service) ClearWishlist(ctx context.Context, sessionID string) error {
	w, err := s.Repo.LoadWishlist(ctx, sessionID)
	if err != nil {
		return err
	}
	w.Clear()
	return s.Repo.SaveWishlist(ctx, sessionID, w)
}
